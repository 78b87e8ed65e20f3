package dto

import (
	"time"

	"github.com/campuskit/school-api/internal/models"
)

// DiaryEntryResponse serializes a diary entry visible to the caller.
type DiaryEntryResponse struct {
	ID          uint      `json:"id"`
	TeacherID   uint      `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	EntryType   string    `json:"entry_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDiaryEntryResponse converts a diary entry model into a DTO.
func NewDiaryEntryResponse(entry models.DiaryEntry) DiaryEntryResponse {
	response := DiaryEntryResponse{
		ID:        entry.ID,
		TeacherID: entry.TeacherID,
		Subject:   entry.Subject,
		Content:   entry.Content,
		EntryType: entry.EntryType,
		CreatedAt: entry.CreatedAt,
	}
	if entry.Teacher != nil {
		response.TeacherName = entry.Teacher.Name
	}
	return response
}
