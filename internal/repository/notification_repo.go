package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// Notification read-status filters.
const (
	NotificationStatusAll    = "all"
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

// NotificationFilter narrows notification listings for one caller.
type NotificationFilter struct {
	Role   string
	SelfID string
	Status string
	Page   int
	Limit  int
}

// NotificationRepository handles persistence for notification fan-out rows.
type NotificationRepository interface {
	InsertBatch(ctx context.Context, notifications []models.Notification) ([]models.Notification, error)
	ListForRecipient(ctx context.Context, filter NotificationFilter) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id uint, role, selfID string) (int64, error)
	MarkAllRead(ctx context.Context, role, selfID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository constructs a repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) InsertBatch(ctx context.Context, notifications []models.Notification) ([]models.Notification, error) {
	if len(notifications) == 0 {
		return nil, nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// recipientScope matches rows addressed to the caller directly, to their role
// topic, or to everyone.
func recipientScope(db *gorm.DB, role, selfID string) *gorm.DB {
	types := []string{role, pluralRecipient(role), models.RecipientAll}
	ids := []string{selfID, models.RecipientAllID}
	return db.Where("recipient_type IN ? AND recipient_id IN ?", types, ids)
}

func pluralRecipient(role string) string {
	switch role {
	case models.RecipientStudent:
		return models.RecipientStudents
	case models.RecipientTeacher:
		return models.RecipientTeachers
	case models.RecipientAdmin:
		return models.RecipientAdmins
	default:
		return role
	}
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, filter NotificationFilter) ([]models.Notification, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := recipientScope(r.db.WithContext(ctx).Model(&models.Notification{}), filter.Role, filter.SelfID)

	switch filter.Status {
	case NotificationStatusUnread:
		query = query.Where("read_at IS NULL")
	case NotificationStatusRead:
		query = query.Where("read_at IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint, role, selfID string) (int64, error) {
	result := recipientScope(r.db.WithContext(ctx).Model(&models.Notification{}), role, selfID).
		Where("id = ?", id).
		Update("read_at", time.Now())
	return result.RowsAffected, result.Error
}

// MarkAllRead sets read_at on the caller's unread rows only, so a repeated
// call affects zero rows.
func (r *notificationRepository) MarkAllRead(ctx context.Context, role, selfID string) (int64, error) {
	result := recipientScope(r.db.WithContext(ctx).Model(&models.Notification{}), role, selfID).
		Where("read_at IS NULL").
		Update("read_at", time.Now())
	return result.RowsAffected, result.Error
}
