package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
)

func TestResultRepositoryTestMarksFilters(t *testing.T) {
	db := setupTestDB(t, &models.DailyTest{}, &models.DailyTestMark{}, &models.Subject{})
	repo := NewResultRepository(db)

	math := models.Subject{Name: "Math"}
	science := models.Subject{Name: "Science"}
	require.NoError(t, db.Create(&math).Error)
	require.NoError(t, db.Create(&science).Error)

	day := func(offset int) time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	tests := []models.DailyTest{
		{ClassroomID: 1, SubjectID: math.ID, TestDate: day(0), MaxMarks: 20},
		{ClassroomID: 1, SubjectID: science.ID, TestDate: day(1), MaxMarks: 20},
		{ClassroomID: 1, SubjectID: math.ID, TestDate: day(2), MaxMarks: 20},
	}
	for i := range tests {
		require.NoError(t, db.Create(&tests[i]).Error)
	}

	score := 15.0
	for _, test := range tests {
		mark := models.DailyTestMark{TestID: test.ID, EnrollmentID: 21, MarksObtained: &score}
		require.NoError(t, db.Create(&mark).Error)
	}

	marks, total, err := repo.TestMarksByEnrollments(context.Background(), []uint{21}, TestResultFilter{Subject: "math"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, marks, 2)
	require.Equal(t, day(2), marks[0].Test.TestDate.UTC(), "expected newest first")
	require.Equal(t, "Math", marks[0].Test.Subject.Name)

	from := day(1)
	marks, total, err = repo.TestMarksByEnrollments(context.Background(), []uint{21}, TestResultFilter{DateFrom: &from, Oldest: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, day(1), marks[0].Test.TestDate.UTC(), "expected oldest first within window")
}

func TestResultRepositorySummariesOrderedByUpdate(t *testing.T) {
	db := setupTestDB(t, &models.ExamSummary{}, &models.Exam{})
	repo := NewResultRepository(db)

	exam := models.Exam{Name: "Final", TypeCode: "FINAL"}
	require.NoError(t, db.Create(&exam).Error)

	older := models.ExamSummary{ExamID: exam.ID, EnrollmentID: 21, Percentage: 60, UpdatedAt: time.Now().Add(-time.Hour)}
	newer := models.ExamSummary{ExamID: exam.ID, EnrollmentID: 21, Percentage: 80, UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	summaries, err := repo.SummariesByEnrollments(context.Background(), []uint{21})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, float64(80), summaries[0].Percentage)
	require.NotNil(t, summaries[0].Exam)
	require.Equal(t, "FINAL", summaries[0].Exam.TypeCode)
}
