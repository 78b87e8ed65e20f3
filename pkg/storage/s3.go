package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// DefaultSignTTL is used when a caller does not provide an expiry.
const DefaultSignTTL = 5 * time.Minute

// Config carries object store connection settings. When Endpoint is set the
// client talks to an S3-compatible service (Supabase storage) with path-style
// addressing.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Client mints short-lived read URLs and deletes objects.
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	logger  zerolog.Logger
}

// New builds an object store client.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimSuffix(cfg.Endpoint, "/"))
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:      client,
		presign: s3.NewPresignClient(client),
		logger:  logger.With().Str("component", "storage").Logger(),
	}, nil
}

// SignRead returns a pre-signed GET URL for the object, valid for ttl
// (DefaultSignTTL when ttl is not positive).
func (c *Client) SignRead(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSignTTL
	}

	request, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to sign read url for %s/%s: %w", bucket, key, err)
	}

	return request.URL, nil
}

// Delete removes an object. Callers treat failures as best-effort: the object
// may already be gone, so companion database mutations must not be blocked.
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("bucket", bucket).Str("key", key).Msg("object delete failed")
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}

	return nil
}
