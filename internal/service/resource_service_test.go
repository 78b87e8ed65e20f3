package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

type resourceRepoStub struct {
	resource     models.StudyResource
	findErr      error
	incremented  []uint
	deleted      []uint
	deleteErr    error
	incrementErr error
}

func (s *resourceRepoStub) List(_ context.Context, _ repository.ResourceFilter) ([]models.StudyResource, int64, error) {
	return []models.StudyResource{s.resource}, 1, nil
}

func (s *resourceRepoStub) FindByID(_ context.Context, _ uint) (models.StudyResource, error) {
	if s.findErr != nil {
		return models.StudyResource{}, s.findErr
	}
	return s.resource, nil
}

func (s *resourceRepoStub) Delete(_ context.Context, resourceID uint) error {
	s.deleted = append(s.deleted, resourceID)
	return s.deleteErr
}

func (s *resourceRepoStub) IncrementDownloads(_ context.Context, resourceID uint) error {
	s.incremented = append(s.incremented, resourceID)
	return s.incrementErr
}

func TestResourceServiceDownload(t *testing.T) {
	repo := &resourceRepoStub{resource: models.StudyResource{ID: 5, FileName: "notes.pdf", StorageKey: "resources/5/notes.pdf"}}
	store := &objectStoreStub{}
	svc := NewResourceService(repo, store, "resources", 10*time.Minute, testLogger())

	download, err := svc.Download(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, uint(5), download.ID)
	require.Equal(t, "notes.pdf", download.FileName)
	require.Equal(t, "https://signed.example.com/resources/5/notes.pdf", download.URL)
	require.Equal(t, []uint{5}, repo.incremented)
	require.Equal(t, "resources", store.signedBucket)
}

func TestResourceServiceDownloadCountFailureIsNotFatal(t *testing.T) {
	repo := &resourceRepoStub{
		resource:     models.StudyResource{ID: 5, StorageKey: "k"},
		incrementErr: errors.New("locked"),
	}
	svc := NewResourceService(repo, &objectStoreStub{}, "resources", 10*time.Minute, testLogger())

	_, err := svc.Download(context.Background(), 5)
	require.NoError(t, err)
}

func TestResourceServiceDownloadMissing(t *testing.T) {
	repo := &resourceRepoStub{findErr: gorm.ErrRecordNotFound}
	svc := NewResourceService(repo, &objectStoreStub{}, "resources", 10*time.Minute, testLogger())

	_, err := svc.Download(context.Background(), 99)
	require.Equal(t, utils.CodeNotFound, utils.AsAppError(err).Code)
}

func TestResourceServiceDeleteRemovesObjectThenRow(t *testing.T) {
	repo := &resourceRepoStub{resource: models.StudyResource{ID: 5, StorageKey: "resources/5/notes.pdf"}}
	store := &objectStoreStub{}
	svc := NewResourceService(repo, store, "resources", 10*time.Minute, testLogger())

	require.NoError(t, svc.Delete(context.Background(), 5))
	require.Equal(t, "resources/5/notes.pdf", store.deletedKey)
	require.Equal(t, []uint{5}, repo.deleted)
}

func TestResourceServiceDeleteSurvivesObjectFailure(t *testing.T) {
	repo := &resourceRepoStub{resource: models.StudyResource{ID: 5, StorageKey: "k"}}
	store := &objectStoreStub{deleteErr: errors.New("bucket unreachable")}
	svc := NewResourceService(repo, store, "resources", 10*time.Minute, testLogger())

	require.NoError(t, svc.Delete(context.Background(), 5))
	require.Equal(t, []uint{5}, repo.deleted, "row removal proceeds when the object is already gone")
}
