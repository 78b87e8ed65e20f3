package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/observability"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// NotificationService persists fan-out rows and hands them to the configured
// delivery driver.
type NotificationService interface {
	Emit(ctx context.Context, payload dto.NotificationEventRequest) ([]dto.NotificationResponse, error)
	List(ctx context.Context, role, selfID, status string, page, limit int) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id uint, role, selfID string) error
	MarkAllRead(ctx context.Context, role, selfID string) (int64, error)
}

type notificationService struct {
	repo      repository.NotificationRepository
	driver    NotificationDriver
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNotificationService constructs a notification service. The driver is
// fixed at startup and read-only thereafter.
func NewNotificationService(repo repository.NotificationRepository, driver NotificationDriver, validate *validator.Validate, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:      repo,
		driver:    driver,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "notification_service").Logger(),
	}
}

// Emit canonicalizes the recipient list, persists one row per canonical pair
// and dispatches the rows through the driver.
func (s *notificationService) Emit(ctx context.Context, payload dto.NotificationEventRequest) ([]dto.NotificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	recipients, err := canonicalizeRecipients(payload.Recipients)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	now := time.Now()

	rows := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		rows = append(rows, models.Notification{
			Type:          payload.Type,
			Title:         payload.Title,
			Body:          body,
			Data:          datatypes.JSONMap(payload.Data),
			RecipientType: recipient.recipientType,
			RecipientID:   recipient.recipientID,
			CreatedAt:     now,
		})
	}

	inserted, err := s.repo.InsertBatch(ctx, rows)
	if err != nil {
		return nil, err
	}

	for _, row := range inserted {
		observability.NotificationRows().WithLabelValues(row.RecipientType).Inc()
	}

	if err := s.driver.Deliver(ctx, inserted); err != nil {
		observability.NotificationSendErrors().WithLabelValues(s.driver.Name()).Inc()
		return nil, err
	}

	return dto.NewNotificationResponseSlice(inserted), nil
}

func (s *notificationService) List(ctx context.Context, role, selfID, status string, page, limit int) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.ListForRecipient(ctx, repository.NotificationFilter{
		Role:   role,
		SelfID: selfID,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, err
	}

	return dto.NewNotificationResponseSlice(notifications), total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint, role, selfID string) error {
	affected, err := s.repo.MarkRead(ctx, id, role, selfID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return utils.ErrNotFound("Notification not found")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, role, selfID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, role, selfID)
}

type canonicalRecipient struct {
	recipientType string
	recipientID   string
}

// canonicalizeRecipients maps {role,id} entries to singular recipient types and
// {topic} entries to plural types addressed to "ALL".
func canonicalizeRecipients(recipients []dto.EventRecipient) ([]canonicalRecipient, error) {
	if len(recipients) == 0 {
		return nil, utils.ErrValidation([]utils.FieldError{{Field: "recipients", Message: "is required"}})
	}

	canonical := make([]canonicalRecipient, 0, len(recipients))
	for _, recipient := range recipients {
		switch {
		case recipient.Topic != "":
			canonical = append(canonical, canonicalRecipient{
				recipientType: recipient.Topic,
				recipientID:   models.RecipientAllID,
			})
		case recipient.Role != "" && recipient.ID != 0:
			canonical = append(canonical, canonicalRecipient{
				recipientType: recipient.Role,
				recipientID:   strconv.FormatUint(uint64(recipient.ID), 10),
			})
		default:
			return nil, utils.ErrValidation([]utils.FieldError{{Field: "recipients", Message: "each entry needs a role with id, or a topic"}})
		}
	}

	return canonical, nil
}
