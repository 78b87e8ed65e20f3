package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// ScheduleService serves timetable files through signed URLs.
type ScheduleService interface {
	Daily(ctx context.Context, classroomID uint) (dto.DailyScheduleResponse, string, error)
	ExamTerms(ctx context.Context, classroomID uint) ([]dto.ExamTermResponse, error)
}

type scheduleService struct {
	schedules repository.ScheduleRepository
	store     ObjectStore
	bucket    string
	signTTL   time.Duration
	logger    zerolog.Logger
}

// NewScheduleService constructs a schedule service.
func NewScheduleService(schedules repository.ScheduleRepository, store ObjectStore, bucket string, signTTL time.Duration, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		schedules: schedules,
		store:     store,
		bucket:    bucket,
		signTTL:   signTTL,
		logger:    logger.With().Str("component", "schedule_service").Logger(),
	}
}

// Daily returns the current daily schedule plus its entity tag. Daily
// schedules have no exam, so the tag's exam segment is fixed at 0.
func (s *scheduleService) Daily(ctx context.Context, classroomID uint) (dto.DailyScheduleResponse, string, error) {
	schedule, err := s.schedules.CurrentDaily(ctx, classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DailyScheduleResponse{}, "", utils.ErrNotFound("Daily schedule not found")
		}
		return dto.DailyScheduleResponse{}, "", err
	}

	bucket := schedule.StorageBucket
	if bucket == "" {
		bucket = s.bucket
	}

	url, err := s.store.SignRead(ctx, bucket, schedule.StorageKey, s.signTTL)
	if err != nil {
		return dto.DailyScheduleResponse{}, "", err
	}

	etag := fmt.Sprintf("schedule-%d-daily-0-v%d", classroomID, schedule.Version)

	return dto.DailyScheduleResponse{
		ClassroomID: classroomID,
		Version:     schedule.Version,
		URL:         url,
		ExpiresAt:   time.Now().Add(s.signTTL),
	}, etag, nil
}

// ExamTerms collapses exam schedule rows per exam, retaining the highest
// version and whether any version is still current.
func (s *scheduleService) ExamTerms(ctx context.Context, classroomID uint) ([]dto.ExamTermResponse, error) {
	schedules, err := s.schedules.ListExam(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	byExam := make(map[uint]*dto.ExamTermResponse)
	order := make([]uint, 0)

	for _, schedule := range schedules {
		examID := examIDOf(schedule)
		if examID == 0 {
			continue
		}

		term, seen := byExam[examID]
		if !seen {
			term = &dto.ExamTermResponse{ExamID: examID}
			if schedule.Exam != nil {
				term.ExamName = schedule.Exam.Name
			}
			byExam[examID] = term
			order = append(order, examID)
		}

		if schedule.Version > term.MaxVersion {
			term.MaxVersion = schedule.Version
		}
		if schedule.IsCurrent {
			term.HasCurrent = true
		}
	}

	terms := make([]dto.ExamTermResponse, 0, len(order))
	for _, examID := range order {
		terms = append(terms, *byExam[examID])
	}

	return terms, nil
}

func examIDOf(schedule models.ScheduleFile) uint {
	if schedule.ExamID == nil {
		return 0
	}
	return *schedule.ExamID
}
