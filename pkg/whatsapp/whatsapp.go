package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const graphAPIBase = "https://graph.facebook.com/v19.0"

// Config contains credentials required to talk to the WhatsApp Cloud API.
type Config struct {
	AccessToken   string
	PhoneNumberID string
}

// Client sends chat messages through the WhatsApp Cloud API.
type Client struct {
	httpClient    *http.Client
	accessToken   string
	phoneNumberID string
	baseURL       string
	logger        zerolog.Logger
}

// New constructs a WhatsApp client instance.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.AccessToken == "" || cfg.PhoneNumberID == "" {
		return nil, fmt.Errorf("whatsapp credentials must be provided")
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		baseURL:       graphAPIBase,
		logger:        logger.With().Str("component", "whatsapp").Logger(),
	}, nil
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText delivers a plain text message to the given mobile number.
func (c *Client) SendText(ctx context.Context, mobile, body string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               mobile,
		Type:             "text",
	}
	payload.Text.Body = body

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.accessToken)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		c.logger.Error().Int("status", response.StatusCode).Bytes("body", detail).Msg("whatsapp send rejected")
		return fmt.Errorf("whatsapp send rejected with status %d", response.StatusCode)
	}

	return nil
}

// SendOTP delivers a one-time password message.
func (c *Client) SendOTP(ctx context.Context, mobile, code string) error {
	return c.SendText(ctx, mobile, fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))
}
