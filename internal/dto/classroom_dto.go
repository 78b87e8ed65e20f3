package dto

import "github.com/campuskit/school-api/internal/models"

// ClassroomResponse serializes a classroom for pickers and admin listings.
type ClassroomResponse struct {
	ID            uint   `json:"id"`
	ClassName     string `json:"class_name"`
	Section       string `json:"section"`
	Medium        string `json:"medium"`
	TotalStudents int    `json:"total_students"`
}

// NewClassroomResponse converts a classroom model into a DTO.
func NewClassroomResponse(classroom models.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:            classroom.ID,
		ClassName:     classroom.ClassName,
		Section:       classroom.Section,
		Medium:        classroom.Medium,
		TotalStudents: classroom.TotalStudents,
	}
}

// NewClassroomResponseSlice converts classroom models into DTOs.
func NewClassroomResponseSlice(classrooms []models.Classroom) []ClassroomResponse {
	responses := make([]ClassroomResponse, 0, len(classrooms))
	for _, classroom := range classrooms {
		responses = append(responses, NewClassroomResponse(classroom))
	}
	return responses
}
