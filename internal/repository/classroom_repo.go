package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// ClassroomFilter narrows classroom listings.
type ClassroomFilter struct {
	Medium string
	Search string
	Page   int
	Limit  int
}

// ClassroomRepository reads classrooms.
type ClassroomRepository interface {
	List(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error)
	FindByID(ctx context.Context, classroomID uint) (models.Classroom, error)
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository constructs a repository backed by GORM.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) List(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&models.Classroom{})
	if filter.Medium != "" {
		query = query.Where("medium = ?", filter.Medium)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			r.db.Where("LOWER(class_name) LIKE ?", pattern).
				Or("LOWER(section) LIKE ?", pattern),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classrooms []models.Classroom
	if err := query.
		Order("class_name ASC, section ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&classrooms).Error; err != nil {
		return nil, 0, err
	}

	return classrooms, total, nil
}

func (r *classroomRepository) FindByID(ctx context.Context, classroomID uint) (models.Classroom, error) {
	var classroom models.Classroom
	if err := r.db.WithContext(ctx).First(&classroom, classroomID).Error; err != nil {
		return models.Classroom{}, err
	}
	return classroom, nil
}
