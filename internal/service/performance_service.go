package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

const recentTrendLength = 5

// PerformanceService aggregates a student's exam results.
type PerformanceService interface {
	GetPerformance(ctx context.Context, studentID uint) (dto.PerformanceResponse, error)
}

type performanceService struct {
	enrollments repository.EnrollmentRepository
	results     repository.ResultRepository
	logger      zerolog.Logger
}

// NewPerformanceService builds the results aggregator.
func NewPerformanceService(enrollments repository.EnrollmentRepository, results repository.ResultRepository, logger zerolog.Logger) PerformanceService {
	return &performanceService{
		enrollments: enrollments,
		results:     results,
		logger:      logger.With().Str("component", "performance_service").Logger(),
	}
}

// GetPerformance builds the overall/rank/lastExam/subjects/recentTrend view
// across every enrollment the student ever had.
func (s *performanceService) GetPerformance(ctx context.Context, studentID uint) (dto.PerformanceResponse, error) {
	enrollmentIDs, err := s.enrollments.ListIDsByStudent(ctx, studentID)
	if err != nil {
		return dto.PerformanceResponse{}, err
	}

	summaries, err := s.results.SummariesByEnrollments(ctx, enrollmentIDs)
	if err != nil {
		return dto.PerformanceResponse{}, err
	}
	if len(summaries) == 0 {
		return dto.PerformanceResponse{}, utils.ErrNotFound("No results found")
	}

	marks, err := s.results.MarksByEnrollments(ctx, enrollmentIDs)
	if err != nil {
		return dto.PerformanceResponse{}, err
	}

	response := dto.PerformanceResponse{
		Overall:     overallPercentage(summaries),
		Rank:        bestRank(summaries),
		LastExam:    lastExamSnapshot(summaries[0]),
		Subjects:    subjectAverages(marks),
		RecentTrend: recentTrend(summaries),
	}

	return response, nil
}

func overallPercentage(summaries []models.ExamSummary) float64 {
	var sum float64
	for _, summary := range summaries {
		sum += summary.Percentage
	}
	return roundTo(sum/float64(len(summaries)), 2)
}

func bestRank(summaries []models.ExamSummary) *int {
	var best *int
	for _, summary := range summaries {
		if summary.Rank == nil {
			continue
		}
		if best == nil || *summary.Rank < *best {
			rank := *summary.Rank
			best = &rank
		}
	}
	return best
}

func lastExamSnapshot(latest models.ExamSummary) dto.LastExamSnapshot {
	snapshot := dto.LastExamSnapshot{
		ExamID:     latest.ExamID,
		Percentage: latest.Percentage,
		Grade:      latest.Grade,
	}
	if latest.Exam != nil && latest.Exam.TypeCode != "" {
		code := latest.Exam.TypeCode
		snapshot.Code = &code
	}
	return snapshot
}

// subjectAverages groups exam marks by subject name (falling back to the
// subject ID) and averages their derived percentages. Marks with a zero
// maximum are excluded.
func subjectAverages(marks []models.ExamMark) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, mark := range marks {
		if mark.MaxMarks <= 0 {
			continue
		}

		key := fmt.Sprintf("%d", mark.SubjectID)
		if mark.Subject != nil && mark.Subject.Name != "" {
			key = mark.Subject.Name
		}

		sums[key] += 100 * mark.MarksObtained / mark.MaxMarks
		counts[key]++
	}

	averages := make(map[string]float64, len(sums))
	for key, sum := range sums {
		averages[key] = roundTo(sum/float64(counts[key]), 1)
	}
	return averages
}

func recentTrend(summaries []models.ExamSummary) []float64 {
	length := len(summaries)
	if length > recentTrendLength {
		length = recentTrendLength
	}

	trend := make([]float64, 0, length)
	for _, summary := range summaries[:length] {
		trend = append(trend, summary.Percentage)
	}
	return trend
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// ExamService lists exams and runs the declaration transition.
type ExamService interface {
	List(ctx context.Context) ([]models.Exam, error)
	Declare(ctx context.Context, examID uint) (models.Exam, error)
}

type examService struct {
	exams  repository.ExamRepository
	logger zerolog.Logger
}

// NewExamService constructs an exam service.
func NewExamService(exams repository.ExamRepository, logger zerolog.Logger) ExamService {
	return &examService{
		exams:  exams,
		logger: logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) List(ctx context.Context) ([]models.Exam, error) {
	return s.exams.List(ctx)
}

// Declare publishes an exam's results. The transition requires a pending exam
// and at least one summary row; it is idempotent through its pre-check and
// never reverts.
func (s *examService) Declare(ctx context.Context, examID uint) (models.Exam, error) {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Exam{}, &utils.AppError{Code: utils.CodeExamNotFound, Message: "Exam not found"}
		}
		return models.Exam{}, err
	}

	if exam.IsDeclared {
		return models.Exam{}, utils.ErrConflict(utils.CodeExamAlreadyDeclared, "Results are already declared for this exam")
	}

	count, err := s.exams.CountSummaries(ctx, examID)
	if err != nil {
		return models.Exam{}, err
	}
	if count == 0 {
		return models.Exam{}, utils.ErrConflict(utils.CodeResultsNotGenerated, "Results have not been generated for this exam")
	}

	if err := s.exams.Declare(ctx, examID); err != nil {
		return models.Exam{}, err
	}

	exam.IsDeclared = true
	return exam, nil
}
