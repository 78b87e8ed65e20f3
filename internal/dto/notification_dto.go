package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/campuskit/school-api/internal/models"
)

// EventRecipient addresses either one principal ({role,id}) or a topic
// ({topic}); exactly one form is expected per entry.
type EventRecipient struct {
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=student teacher admin"`
	ID    uint   `json:"id,omitempty"`
	Topic string `json:"topic,omitempty" validate:"omitempty,oneof=students teachers admins all"`
}

// NotificationEventRequest is the fan-out input.
type NotificationEventRequest struct {
	Type       string                 `json:"type" validate:"required,max=64"`
	Title      string                 `json:"title" validate:"required,max=255"`
	Body       string                 `json:"body" validate:"required"`
	Recipients []EventRecipient       `json:"recipients" validate:"required,min=1,dive"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// NotificationResponse serializes one fan-out row.
type NotificationResponse struct {
	ID            uint              `json:"id"`
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Data          datatypes.JSONMap `json:"data,omitempty"`
	RecipientType string            `json:"recipient_type"`
	RecipientID   string            `json:"recipient_id"`
	ReadAt        *time.Time        `json:"read_at"`
	CreatedAt     time.Time         `json:"created_at"`
}

// NewNotificationResponse converts a notification model into a DTO.
func NewNotificationResponse(notification models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            notification.ID,
		Type:          notification.Type,
		Title:         notification.Title,
		Body:          notification.Body,
		Data:          notification.Data,
		RecipientType: notification.RecipientType,
		RecipientID:   notification.RecipientID,
		ReadAt:        notification.ReadAt,
		CreatedAt:     notification.CreatedAt,
	}
}

// NewNotificationResponseSlice converts notification models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}
	return responses
}

// DeviceRegisterRequest registers a push device for the caller.
type DeviceRegisterRequest struct {
	Token    string `json:"token" validate:"required,max=500"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios web"`
}
