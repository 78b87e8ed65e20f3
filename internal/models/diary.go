package models

import "time"

// Diary entry types.
const (
	DiaryTypePersonal  = "Personal"
	DiaryTypeBroadcast = "Broadcast"
)

// DiaryEntry is a teacher note addressed either to a single enrollment
// (Personal) or to a whole classroom (Broadcast). A student sees the entry iff
// it is Personal for their enrollment or Broadcast for their classroom.
type DiaryEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeacherID    uint      `gorm:"index;not null" json:"teacher_id"`
	Subject      string    `gorm:"size:128" json:"subject"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	EntryType    string    `gorm:"size:16;not null" json:"entry_type"`
	EnrollmentID *uint     `gorm:"index" json:"enrollment_id,omitempty"`
	ClassroomID  *uint     `gorm:"index" json:"classroom_id,omitempty"`
	Teacher      *Teacher  `json:"teacher,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
