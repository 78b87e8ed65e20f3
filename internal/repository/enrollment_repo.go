package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// EnrollmentRepository resolves student enrollments.
type EnrollmentRepository interface {
	ResolveLatest(ctx context.Context, studentID uint) (models.StudentEnrollment, error)
	ListIDsByStudent(ctx context.Context, studentID uint) ([]uint, error)
	FindByID(ctx context.Context, enrollmentID uint) (models.StudentEnrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs a repository backed by GORM.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// ResolveLatest returns the student's current enrollment. Ties are broken by
// the largest enrollment ID.
func (r *enrollmentRepository) ResolveLatest(ctx context.Context, studentID uint) (models.StudentEnrollment, error) {
	var enrollment models.StudentEnrollment
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		First(&enrollment).Error; err != nil {
		return models.StudentEnrollment{}, err
	}

	return enrollment, nil
}

// ListIDsByStudent returns every enrollment ID the student ever had,
// historical enrollments included.
func (r *enrollmentRepository) ListIDsByStudent(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.StudentEnrollment{}).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *enrollmentRepository) FindByID(ctx context.Context, enrollmentID uint) (models.StudentEnrollment, error) {
	var enrollment models.StudentEnrollment
	if err := r.db.WithContext(ctx).
		Preload("Classroom").
		First(&enrollment, enrollmentID).Error; err != nil {
		return models.StudentEnrollment{}, err
	}

	return enrollment, nil
}
