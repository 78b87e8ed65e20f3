package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campuskit/school-api/internal/models"
)

// DeviceRepository persists push device registrations.
type DeviceRepository interface {
	Upsert(ctx context.Context, device *models.DeviceToken) error
	DeleteByToken(ctx context.Context, token string) (int64, error)
	ListValidForRecipient(ctx context.Context, recipientType, recipientID string) ([]models.DeviceToken, error)
}

type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository constructs a repository backed by GORM.
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Upsert registers a device, replacing ownership fields when the token is
// already known so re-registration never duplicates rows.
func (r *deviceRepository) Upsert(ctx context.Context, device *models.DeviceToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"platform", "recipient_type", "recipient_id", "is_valid", "updated_at"}),
		}).
		Create(device).Error
}

func (r *deviceRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.DeviceToken{})
	return result.RowsAffected, result.Error
}

func (r *deviceRepository) ListValidForRecipient(ctx context.Context, recipientType, recipientID string) ([]models.DeviceToken, error) {
	query := r.db.WithContext(ctx).Where("is_valid = ?", true)

	switch recipientType {
	case models.RecipientAll:
	case models.RecipientStudents, models.RecipientTeachers, models.RecipientAdmins:
		query = query.Where("recipient_type = ?", singularRecipient(recipientType))
	default:
		query = query.Where("recipient_type = ? AND recipient_id = ?", recipientType, recipientID)
	}

	var devices []models.DeviceToken
	if err := query.Find(&devices).Error; err != nil {
		return nil, err
	}

	return devices, nil
}

func singularRecipient(plural string) string {
	switch plural {
	case models.RecipientStudents:
		return models.RecipientStudent
	case models.RecipientTeachers:
		return models.RecipientTeacher
	case models.RecipientAdmins:
		return models.RecipientAdmin
	default:
		return plural
	}
}
