package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/utils"
)

type scheduleRepoStub struct {
	daily    models.ScheduleFile
	dailyErr error
	exams    []models.ScheduleFile
}

func (s *scheduleRepoStub) CurrentDaily(_ context.Context, _ uint) (models.ScheduleFile, error) {
	if s.dailyErr != nil {
		return models.ScheduleFile{}, s.dailyErr
	}
	return s.daily, nil
}

func (s *scheduleRepoStub) ListExam(_ context.Context, _ uint) ([]models.ScheduleFile, error) {
	return s.exams, nil
}

type objectStoreStub struct {
	signedBucket string
	signedKey    string
	deletedKey   string
	signErr      error
	deleteErr    error
}

func (s *objectStoreStub) SignRead(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	s.signedBucket = bucket
	s.signedKey = key
	return "https://signed.example.com/" + key, nil
}

func (s *objectStoreStub) Delete(_ context.Context, _, key string) error {
	s.deletedKey = key
	return s.deleteErr
}

func TestScheduleServiceDailyETag(t *testing.T) {
	store := &objectStoreStub{}
	repo := &scheduleRepoStub{daily: models.ScheduleFile{ClassroomID: 3, Version: 4, StorageBucket: "timetables", StorageKey: "c3/daily/v4.pdf"}}
	svc := NewScheduleService(repo, store, "fallback", 5*time.Minute, testLogger())

	schedule, etag, err := svc.Daily(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "schedule-3-daily-0-v4", etag)
	require.Equal(t, 4, schedule.Version)
	require.Equal(t, "https://signed.example.com/c3/daily/v4.pdf", schedule.URL)
	require.Equal(t, "timetables", store.signedBucket, "row bucket wins over the configured default")
}

func TestScheduleServiceDailyFallbackBucket(t *testing.T) {
	store := &objectStoreStub{}
	repo := &scheduleRepoStub{daily: models.ScheduleFile{ClassroomID: 3, Version: 1, StorageKey: "k"}}
	svc := NewScheduleService(repo, store, "fallback", 5*time.Minute, testLogger())

	_, _, err := svc.Daily(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "fallback", store.signedBucket)
}

func TestScheduleServiceDailyMissing(t *testing.T) {
	repo := &scheduleRepoStub{dailyErr: gorm.ErrRecordNotFound}
	svc := NewScheduleService(repo, &objectStoreStub{}, "b", 5*time.Minute, testLogger())

	_, _, err := svc.Daily(context.Background(), 3)
	require.Equal(t, utils.CodeNotFound, utils.AsAppError(err).Code)
}

func TestScheduleServiceExamTermsCollapse(t *testing.T) {
	midterm := uint(10)
	final := uint(11)
	repo := &scheduleRepoStub{exams: []models.ScheduleFile{
		{ExamID: &midterm, Version: 3, IsCurrent: true, Exam: &models.Exam{ID: midterm, Name: "Midterm"}},
		{ExamID: &midterm, Version: 2},
		{ExamID: &final, Version: 1, Exam: &models.Exam{ID: final, Name: "Final"}},
		{ExamID: nil, Version: 9},
	}}
	svc := NewScheduleService(repo, &objectStoreStub{}, "b", 5*time.Minute, testLogger())

	terms, err := svc.ExamTerms(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, terms, 2)

	require.Equal(t, midterm, terms[0].ExamID)
	require.Equal(t, "Midterm", terms[0].ExamName)
	require.Equal(t, 3, terms[0].MaxVersion)
	require.True(t, terms[0].HasCurrent)

	require.Equal(t, final, terms[1].ExamID)
	require.Equal(t, 1, terms[1].MaxVersion)
	require.False(t, terms[1].HasCurrent)
}
