package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// TestResultFilter narrows daily test mark listings.
type TestResultFilter struct {
	Subject  string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
	Oldest   bool
}

// ResultRepository reads exam summaries, exam marks and daily test marks.
type ResultRepository interface {
	SummariesByEnrollments(ctx context.Context, enrollmentIDs []uint) ([]models.ExamSummary, error)
	MarksByEnrollments(ctx context.Context, enrollmentIDs []uint) ([]models.ExamMark, error)
	TestMarksByEnrollments(ctx context.Context, enrollmentIDs []uint, filter TestResultFilter) ([]models.DailyTestMark, int64, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository constructs a repository backed by GORM.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// SummariesByEnrollments returns summaries newest-updated first, with the exam
// preloaded for type codes.
func (r *resultRepository) SummariesByEnrollments(ctx context.Context, enrollmentIDs []uint) ([]models.ExamSummary, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	var summaries []models.ExamSummary
	if err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("enrollment_id IN ?", enrollmentIDs).
		Order("updated_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *resultRepository) MarksByEnrollments(ctx context.Context, enrollmentIDs []uint) ([]models.ExamMark, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	var marks []models.ExamMark
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("enrollment_id IN ?", enrollmentIDs).
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

// TestMarksByEnrollments lists daily test marks joined with their tests,
// filtered by subject and date window, newest first unless Oldest is set.
func (r *resultRepository) TestMarksByEnrollments(ctx context.Context, enrollmentIDs []uint, filter TestResultFilter) ([]models.DailyTestMark, int64, error) {
	if len(enrollmentIDs) == 0 {
		return nil, 0, nil
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).
		Model(&models.DailyTestMark{}).
		Joins("JOIN daily_tests ON daily_tests.id = daily_test_marks.test_id").
		Where("daily_test_marks.enrollment_id IN ?", enrollmentIDs)

	if filter.Subject != "" {
		query = query.
			Joins("JOIN subjects ON subjects.id = daily_tests.subject_id").
			Where("LOWER(subjects.name) = LOWER(?)", filter.Subject)
	}
	if filter.DateFrom != nil {
		query = query.Where("daily_tests.test_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("daily_tests.test_date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "daily_tests.test_date DESC"
	if filter.Oldest {
		order = "daily_tests.test_date ASC"
	}

	var marks []models.DailyTestMark
	if err := query.
		Preload("Test").
		Preload("Test.Subject").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&marks).Error; err != nil {
		return nil, 0, err
	}

	return marks, total, nil
}
