package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// ExamRepository manages exams and the declaration transition.
type ExamRepository interface {
	FindByID(ctx context.Context, examID uint) (models.Exam, error)
	List(ctx context.Context) ([]models.Exam, error)
	CountSummaries(ctx context.Context, examID uint) (int64, error)
	Declare(ctx context.Context, examID uint) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository constructs a repository backed by GORM.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) FindByID(ctx context.Context, examID uint) (models.Exam, error) {
	var exam models.Exam
	if err := r.db.WithContext(ctx).First(&exam, examID).Error; err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

func (r *examRepository) List(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) CountSummaries(ctx context.Context, examID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExamSummary{}).
		Where("exam_id = ?", examID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Declare flips is_declared to true. The pre-checks live in the service; this
// is the single monotonic write.
func (r *examRepository) Declare(ctx context.Context, examID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Exam{}).
		Where("id = ?", examID).
		Update("is_declared", true).Error
}
