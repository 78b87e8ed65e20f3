package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
)

const gradeAbsent = "Absent"

// TestResultQuery carries the caller-facing filters for daily test listings.
type TestResultQuery struct {
	Subject   string
	DateFrom  string
	DateTo    string
	Range     string
	Limit     int
	Offset    int
	SortOrder string
}

// ResultService lists a student's daily test results.
type ResultService interface {
	ListTests(ctx context.Context, studentID uint, query TestResultQuery) (dto.TestResultListResponse, error)
}

type resultService struct {
	enrollments repository.EnrollmentRepository
	results     repository.ResultRepository
	logger      zerolog.Logger
}

// NewResultService constructs a result service.
func NewResultService(enrollments repository.EnrollmentRepository, results repository.ResultRepository, logger zerolog.Logger) ResultService {
	return &resultService{
		enrollments: enrollments,
		results:     results,
		logger:      logger.With().Str("component", "result_service").Logger(),
	}
}

// ListTests resolves the student's enrollments and returns their daily test
// marks under the requested filters. An unknown student simply has no
// enrollments and yields an empty listing.
func (s *resultService) ListTests(ctx context.Context, studentID uint, query TestResultQuery) (dto.TestResultListResponse, error) {
	enrollmentIDs, err := s.enrollments.ListIDsByStudent(ctx, studentID)
	if err != nil {
		return dto.TestResultListResponse{}, err
	}
	if len(enrollmentIDs) == 0 {
		return dto.TestResultListResponse{Items: []dto.TestResultResponse{}}, nil
	}

	filter := repository.TestResultFilter{
		Subject: query.Subject,
		Limit:   query.Limit,
		Offset:  query.Offset,
		Oldest:  query.SortOrder == "oldest",
	}

	if from, ok := parseDate(query.DateFrom); ok {
		filter.DateFrom = &from
	}
	if to, ok := parseDate(query.DateTo); ok {
		filter.DateTo = &to
	}

	// range=month narrows to the last 30 days unless an explicit window
	// already covers the lower bound.
	if query.Range == "month" && filter.DateFrom == nil {
		from := time.Now().AddDate(0, 0, -30)
		filter.DateFrom = &from
	}

	marks, total, err := s.results.TestMarksByEnrollments(ctx, enrollmentIDs, filter)
	if err != nil {
		return dto.TestResultListResponse{}, err
	}

	items := make([]dto.TestResultResponse, 0, len(marks))
	for _, mark := range marks {
		items = append(items, testResultOf(mark))
	}

	return dto.TestResultListResponse{Items: items, Total: total}, nil
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func testResultOf(mark models.DailyTestMark) dto.TestResultResponse {
	item := dto.TestResultResponse{
		TestID:        mark.TestID,
		MarksObtained: mark.MarksObtained,
		IsAbsent:      mark.IsAbsent,
	}

	if mark.Test != nil {
		item.TestDate = mark.Test.TestDate
		item.MaxMarks = mark.Test.MaxMarks
		if mark.Test.Subject != nil {
			item.Subject = mark.Test.Subject.Name
		}
	}

	if mark.IsAbsent || mark.MarksObtained == nil {
		item.Percentage = 0
		item.Grade = gradeAbsent
		return item
	}

	if item.MaxMarks > 0 {
		item.Percentage = roundTo(100*(*mark.MarksObtained)/item.MaxMarks, 2)
	}
	item.Grade = gradeFor(item.Percentage)

	return item
}

// gradeFor maps a percentage onto the report-card letter bands.
func gradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}
