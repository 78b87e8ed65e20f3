package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
)

func TestDiaryRepositoryVisibilityRule(t *testing.T) {
	db := setupTestDB(t, &models.DiaryEntry{}, &models.Teacher{})
	repo := NewDiaryRepository(db)

	enrollment := uint(21)
	otherEnrollment := uint(22)
	classroom := uint(3)
	otherClassroom := uint(4)

	entries := []models.DiaryEntry{
		{TeacherID: 1, Subject: "own personal", EntryType: models.DiaryTypePersonal, EnrollmentID: &enrollment},
		{TeacherID: 1, Subject: "other personal", EntryType: models.DiaryTypePersonal, EnrollmentID: &otherEnrollment},
		{TeacherID: 1, Subject: "class broadcast", EntryType: models.DiaryTypeBroadcast, ClassroomID: &classroom},
		{TeacherID: 1, Subject: "other broadcast", EntryType: models.DiaryTypeBroadcast, ClassroomID: &otherClassroom},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	visible, total, err := repo.ListForStudent(context.Background(), enrollment, classroom, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	subjects := make([]string, 0, len(visible))
	for _, entry := range visible {
		subjects = append(subjects, entry.Subject)
	}
	require.ElementsMatch(t, []string{"own personal", "class broadcast"}, subjects)
}
