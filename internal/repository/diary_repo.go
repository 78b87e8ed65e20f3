package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// DiaryRepository reads diary entries with the student visibility rule applied.
type DiaryRepository interface {
	ListForStudent(ctx context.Context, enrollmentID, classroomID uint, page, limit int) ([]models.DiaryEntry, int64, error)
}

type diaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository constructs a repository backed by GORM.
func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

// ListForStudent returns entries visible to the student: Personal entries for
// their enrollment or Broadcast entries for their classroom.
func (r *diaryRepository) ListForStudent(ctx context.Context, enrollmentID, classroomID uint, page, limit int) ([]models.DiaryEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	visibility := r.db.
		Where("entry_type = ? AND enrollment_id = ?", models.DiaryTypePersonal, enrollmentID).
		Or("entry_type = ? AND classroom_id = ?", models.DiaryTypeBroadcast, classroomID)

	query := r.db.WithContext(ctx).Model(&models.DiaryEntry{}).Where(visibility)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.DiaryEntry
	if err := query.
		Preload("Teacher").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
