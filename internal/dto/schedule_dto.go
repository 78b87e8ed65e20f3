package dto

import "time"

// DailyScheduleResponse carries the signed URL for the current daily timetable.
type DailyScheduleResponse struct {
	ClassroomID uint      `json:"classroom_id"`
	Version     int       `json:"version"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ExamTermResponse is an exam schedule collapsed per exam: the highest
// uploaded version and whether any version is still current.
type ExamTermResponse struct {
	ExamID     uint   `json:"exam_id"`
	ExamName   string `json:"exam_name,omitempty"`
	MaxVersion int    `json:"max_version"`
	HasCurrent bool   `json:"has_current"`
}
