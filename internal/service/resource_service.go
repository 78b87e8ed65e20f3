package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// ObjectStore mints signed read URLs and deletes stored objects.
type ObjectStore interface {
	SignRead(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// ResourceService manages study resources and their stored objects.
type ResourceService interface {
	List(ctx context.Context, filter repository.ResourceFilter) (dto.ResourceListResponse, error)
	Download(ctx context.Context, resourceID uint) (dto.ResourceDownloadResponse, error)
	Delete(ctx context.Context, resourceID uint) error
}

type resourceService struct {
	resources repository.ResourceRepository
	store     ObjectStore
	bucket    string
	signTTL   time.Duration
	logger    zerolog.Logger
}

// NewResourceService constructs a resource service.
func NewResourceService(resources repository.ResourceRepository, store ObjectStore, bucket string, signTTL time.Duration, logger zerolog.Logger) ResourceService {
	return &resourceService{
		resources: resources,
		store:     store,
		bucket:    bucket,
		signTTL:   signTTL,
		logger:    logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) List(ctx context.Context, filter repository.ResourceFilter) (dto.ResourceListResponse, error) {
	resources, total, err := s.resources.List(ctx, filter)
	if err != nil {
		return dto.ResourceListResponse{}, err
	}

	items := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		items = append(items, dto.NewResourceResponse(resource))
	}

	return dto.ResourceListResponse{
		Items:      items,
		Pagination: dto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

// Download mints a signed URL for the resource object and counts the download.
func (s *resourceService) Download(ctx context.Context, resourceID uint) (dto.ResourceDownloadResponse, error) {
	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResourceDownloadResponse{}, utils.ErrNotFound("Resource not found")
		}
		return dto.ResourceDownloadResponse{}, err
	}

	url, err := s.store.SignRead(ctx, s.bucket, resource.StorageKey, s.signTTL)
	if err != nil {
		return dto.ResourceDownloadResponse{}, err
	}

	if err := s.resources.IncrementDownloads(ctx, resource.ID); err != nil {
		s.logger.Warn().Err(err).Uint("resource_id", resource.ID).Msg("failed to count download")
	}

	return dto.ResourceDownloadResponse{
		ID:        resource.ID,
		FileName:  resource.FileName,
		URL:       url,
		ExpiresAt: time.Now().Add(s.signTTL),
	}, nil
}

// Delete removes the stored object first, then the database row. An object
// delete failure is logged only; the object may already be gone.
func (s *resourceService) Delete(ctx context.Context, resourceID uint) error {
	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound("Resource not found")
		}
		return err
	}

	if err := s.store.Delete(ctx, s.bucket, resource.StorageKey); err != nil {
		s.logger.Warn().Err(err).Uint("resource_id", resource.ID).Msg("object delete failed, removing row anyway")
	}

	return s.resources.Delete(ctx, resource.ID)
}
