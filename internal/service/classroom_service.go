package service

import (
	"context"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/repository"
)

// ClassroomService lists classrooms for admin pickers.
type ClassroomService interface {
	List(ctx context.Context, filter repository.ClassroomFilter) ([]dto.ClassroomResponse, dto.PaginationMeta, error)
}

type classroomService struct {
	classrooms repository.ClassroomRepository
}

// NewClassroomService constructs a classroom service.
func NewClassroomService(classrooms repository.ClassroomRepository) ClassroomService {
	return &classroomService{classrooms: classrooms}
}

func (s *classroomService) List(ctx context.Context, filter repository.ClassroomFilter) ([]dto.ClassroomResponse, dto.PaginationMeta, error) {
	classrooms, total, err := s.classrooms.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewClassroomResponseSlice(classrooms), dto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}
