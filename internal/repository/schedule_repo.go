package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// ScheduleRepository reads schedule file rows.
type ScheduleRepository interface {
	CurrentDaily(ctx context.Context, classroomID uint) (models.ScheduleFile, error)
	ListExam(ctx context.Context, classroomID uint) ([]models.ScheduleFile, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs a repository backed by GORM.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) CurrentDaily(ctx context.Context, classroomID uint) (models.ScheduleFile, error) {
	var schedule models.ScheduleFile
	if err := r.db.WithContext(ctx).
		Where("classroom_id = ? AND type = ? AND is_current = ?", classroomID, models.ScheduleTypeDaily, true).
		First(&schedule).Error; err != nil {
		return models.ScheduleFile{}, err
	}

	return schedule, nil
}

// ListExam returns every exam schedule row for the classroom, newest version
// first; the service collapses them per exam.
func (r *scheduleRepository) ListExam(ctx context.Context, classroomID uint) ([]models.ScheduleFile, error) {
	var schedules []models.ScheduleFile
	if err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("classroom_id = ? AND type = ?", classroomID, models.ScheduleTypeExam).
		Order("version DESC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}
