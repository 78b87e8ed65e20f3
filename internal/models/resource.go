package models

import "time"

// StudyResource is an uploaded document scoped to a classroom and subject.
// Versions of the same logical resource share (classroom_id, subject_id,
// resource_type); at most one version in the group has IsCurrent set.
type StudyResource struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ClassroomID   uint       `gorm:"index;not null" json:"classroom_id"`
	SubjectID     uint       `gorm:"index;not null" json:"subject_id"`
	TeacherID     uint       `gorm:"index;not null" json:"teacher_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	ResourceType  string     `gorm:"size:32;not null" json:"resource_type"`
	StorageKey    string     `gorm:"size:500;not null" json:"storage_key"`
	FileName      string     `gorm:"size:255" json:"file_name"`
	FileSize      int64      `json:"file_size"`
	MimeType      string     `gorm:"size:128" json:"mime_type"`
	Version       int        `gorm:"not null;default:1" json:"version"`
	IsCurrent     bool       `gorm:"not null;default:true" json:"is_current"`
	DownloadCount int64      `gorm:"not null;default:0" json:"download_count"`
	Subject       *Subject   `json:"subject,omitempty"`
	Classroom     *Classroom `json:"classroom,omitempty"`
	Teacher       *Teacher   `json:"teacher,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Schedule types.
const (
	ScheduleTypeDaily = "daily"
	ScheduleTypeExam  = "exam"
)

// ScheduleFile points at an uploaded timetable object. Exactly one row per
// (classroom_id, type, exam_id) group is current.
type ScheduleFile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClassroomID   uint      `gorm:"index;not null" json:"classroom_id"`
	Type          string    `gorm:"size:16;not null" json:"type"`
	ExamID        *uint     `gorm:"index" json:"exam_id,omitempty"`
	Version       int       `gorm:"not null;default:1" json:"version"`
	IsCurrent     bool      `gorm:"not null;default:true" json:"is_current"`
	StorageBucket string    `gorm:"size:128;not null" json:"storage_bucket"`
	StorageKey    string    `gorm:"size:500;not null" json:"storage_key"`
	Exam          *Exam     `json:"exam,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
