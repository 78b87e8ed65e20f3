package service

import (
	"context"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/repository"
)

// DiaryService lists diary entries visible to a student.
type DiaryService interface {
	ListForStudent(ctx context.Context, enrollmentID, classroomID uint, page, limit int) ([]dto.DiaryEntryResponse, dto.PaginationMeta, error)
}

type diaryService struct {
	diaries repository.DiaryRepository
}

// NewDiaryService constructs a diary service.
func NewDiaryService(diaries repository.DiaryRepository) DiaryService {
	return &diaryService{diaries: diaries}
}

func (s *diaryService) ListForStudent(ctx context.Context, enrollmentID, classroomID uint, page, limit int) ([]dto.DiaryEntryResponse, dto.PaginationMeta, error) {
	entries, total, err := s.diaries.ListForStudent(ctx, enrollmentID, classroomID, page, limit)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.DiaryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewDiaryEntryResponse(entry))
	}

	return responses, dto.NewPaginationMeta(page, limit, total), nil
}
