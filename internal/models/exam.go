package models

import "time"

// Exam is a scheduled examination. IsDeclared is monotonic: once results are
// declared it never reverts to false.
type Exam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TypeCode   string    `gorm:"size:32" json:"type_code"`
	IsDeclared bool      `gorm:"not null;default:false" json:"is_declared"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExamSummary is the pre-computed per-student per-exam score record. At least
// one summary row must exist before an exam can be declared.
type ExamSummary struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExamID       uint      `gorm:"index;not null" json:"exam_id"`
	EnrollmentID uint      `gorm:"index;not null" json:"enrollment_id"`
	TotalMarks   float64   `json:"total_marks"`
	Percentage   float64   `json:"percentage"`
	Rank         *int      `json:"rank"`
	Grade        string    `gorm:"size:16" json:"grade"`
	Exam         *Exam     `json:"exam,omitempty"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`
}

// ExamMark is a per-subject score within an exam.
type ExamMark struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	ExamID        uint     `gorm:"index;not null" json:"exam_id"`
	EnrollmentID  uint     `gorm:"index;not null" json:"enrollment_id"`
	SubjectID     uint     `gorm:"index;not null" json:"subject_id"`
	MarksObtained float64  `json:"marks_obtained"`
	MaxMarks      float64  `json:"max_marks"`
	Subject       *Subject `json:"subject,omitempty"`
}

// DailyTest is a lightweight classroom test.
type DailyTest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassroomID uint      `gorm:"index;not null" json:"classroom_id"`
	SubjectID   uint      `gorm:"index;not null" json:"subject_id"`
	TestDate    time.Time `gorm:"index" json:"test_date"`
	MaxMarks    float64   `json:"max_marks"`
	Subject     *Subject  `json:"subject,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyTestMark records a student's daily test score. An absent student has
// no obtained marks and reports a zero percentage with the "Absent" grade.
type DailyTestMark struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TestID        uint       `gorm:"index;not null" json:"test_id"`
	EnrollmentID  uint       `gorm:"index;not null" json:"enrollment_id"`
	MarksObtained *float64   `json:"marks_obtained"`
	IsAbsent      bool       `gorm:"not null;default:false" json:"is_absent"`
	Test          *DailyTest `json:"test,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
