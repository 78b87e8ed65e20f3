package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// ResourceFilter narrows study resource listings. Search is a case-insensitive
// substring match over title, description and file name.
type ResourceFilter struct {
	ClassroomID  uint
	SubjectID    uint
	TeacherID    uint
	ResourceType string
	Search       string
	CurrentOnly  bool
	Page         int
	Limit        int
}

// ResourceRepository persists study resources.
type ResourceRepository interface {
	List(ctx context.Context, filter ResourceFilter) ([]models.StudyResource, int64, error)
	FindByID(ctx context.Context, resourceID uint) (models.StudyResource, error)
	Delete(ctx context.Context, resourceID uint) error
	IncrementDownloads(ctx context.Context, resourceID uint) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository constructs a repository backed by GORM.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) List(ctx context.Context, filter ResourceFilter) ([]models.StudyResource, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&models.StudyResource{})
	if filter.ClassroomID != 0 {
		query = query.Where("classroom_id = ?", filter.ClassroomID)
	}
	if filter.SubjectID != 0 {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.TeacherID != 0 {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.CurrentOnly {
		query = query.Where("is_current = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			r.db.Where("LOWER(title) LIKE ?", pattern).
				Or("LOWER(description) LIKE ?", pattern).
				Or("LOWER(file_name) LIKE ?", pattern),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resources []models.StudyResource
	if err := query.
		Preload("Subject").
		Preload("Classroom").
		Preload("Teacher").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

func (r *resourceRepository) FindByID(ctx context.Context, resourceID uint) (models.StudyResource, error) {
	var resource models.StudyResource
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		First(&resource, resourceID).Error; err != nil {
		return models.StudyResource{}, err
	}
	return resource, nil
}

func (r *resourceRepository) Delete(ctx context.Context, resourceID uint) error {
	return r.db.WithContext(ctx).Delete(&models.StudyResource{}, resourceID).Error
}

func (r *resourceRepository) IncrementDownloads(ctx context.Context, resourceID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.StudyResource{}).
		Where("id = ?", resourceID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
