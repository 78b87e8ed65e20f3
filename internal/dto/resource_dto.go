package dto

import (
	"time"

	"github.com/campuskit/school-api/internal/models"
)

// ResourceResponse serializes one study resource.
type ResourceResponse struct {
	ID            uint      `json:"id"`
	ClassroomID   uint      `json:"classroom_id"`
	SubjectID     uint      `json:"subject_id"`
	SubjectName   string    `json:"subject_name,omitempty"`
	TeacherID     uint      `json:"teacher_id"`
	TeacherName   string    `json:"teacher_name,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ResourceType  string    `json:"resource_type"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	Version       int       `json:"version"`
	IsCurrent     bool      `json:"is_current"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewResourceResponse converts a resource model into a DTO.
func NewResourceResponse(resource models.StudyResource) ResourceResponse {
	response := ResourceResponse{
		ID:            resource.ID,
		ClassroomID:   resource.ClassroomID,
		SubjectID:     resource.SubjectID,
		TeacherID:     resource.TeacherID,
		Title:         resource.Title,
		Description:   resource.Description,
		ResourceType:  resource.ResourceType,
		FileName:      resource.FileName,
		FileSize:      resource.FileSize,
		MimeType:      resource.MimeType,
		Version:       resource.Version,
		IsCurrent:     resource.IsCurrent,
		DownloadCount: resource.DownloadCount,
		CreatedAt:     resource.CreatedAt,
		UpdatedAt:     resource.UpdatedAt,
	}
	if resource.Subject != nil {
		response.SubjectName = resource.Subject.Name
	}
	if resource.Teacher != nil {
		response.TeacherName = resource.Teacher.Name
	}
	return response
}

// ResourceListResponse wraps a paginated resource listing.
type ResourceListResponse struct {
	Items      []ResourceResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// ResourceDownloadResponse carries a short-lived signed URL for one resource.
type ResourceDownloadResponse struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
