package dto

import "time"

// LastExamSnapshot projects the most recently updated exam summary.
type LastExamSnapshot struct {
	ExamID     uint    `json:"exam_id"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
	Code       *string `json:"code"`
}

// PerformanceResponse is the student results aggregation.
type PerformanceResponse struct {
	Overall     float64            `json:"overall"`
	Rank        *int               `json:"rank"`
	LastExam    LastExamSnapshot   `json:"last_exam"`
	Subjects    map[string]float64 `json:"subjects"`
	RecentTrend []float64          `json:"recent_trend"`
}

// TestResultResponse serializes one daily test mark for the caller.
type TestResultResponse struct {
	TestID        uint      `json:"test_id"`
	Subject       string    `json:"subject"`
	TestDate      time.Time `json:"test_date"`
	MaxMarks      float64   `json:"max_marks"`
	MarksObtained *float64  `json:"marks_obtained"`
	IsAbsent      bool      `json:"is_absent"`
	Percentage    float64   `json:"percentage"`
	Grade         string    `json:"grade"`
}

// TestResultListResponse wraps a paginated test result listing.
type TestResultListResponse struct {
	Items []TestResultResponse `json:"items"`
	Total int64                `json:"total"`
}
