package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
)

func TestDeviceRepositoryUpsertKeepsOneRowPerToken(t *testing.T) {
	db := setupTestDB(t, &models.DeviceToken{})
	repo := NewDeviceRepository(db)

	first := models.DeviceToken{Token: "tok-1", Platform: "android", RecipientType: models.RecipientStudent, RecipientID: "7", IsValid: true}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	second := models.DeviceToken{Token: "tok-1", Platform: "ios", RecipientType: models.RecipientTeacher, RecipientID: "3", IsValid: true}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	var count int64
	require.NoError(t, db.Model(&models.DeviceToken{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var stored models.DeviceToken
	require.NoError(t, db.Where("token = ?", "tok-1").First(&stored).Error)
	require.Equal(t, "ios", stored.Platform)
	require.Equal(t, models.RecipientTeacher, stored.RecipientType)
	require.Equal(t, "3", stored.RecipientID)
}

func TestDeviceRepositoryDeleteByToken(t *testing.T) {
	db := setupTestDB(t, &models.DeviceToken{})
	repo := NewDeviceRepository(db)

	device := models.DeviceToken{Token: "tok-2", RecipientType: models.RecipientStudent, RecipientID: "7", IsValid: true}
	require.NoError(t, repo.Upsert(context.Background(), &device))

	affected, err := repo.DeleteByToken(context.Background(), "tok-2")
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	affected, err = repo.DeleteByToken(context.Background(), "tok-2")
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestDeviceRepositoryListValidForRecipient(t *testing.T) {
	db := setupTestDB(t, &models.DeviceToken{})
	repo := NewDeviceRepository(db)

	seed := []models.DeviceToken{
		{Token: "s7", RecipientType: models.RecipientStudent, RecipientID: "7", IsValid: true},
		{Token: "s8", RecipientType: models.RecipientStudent, RecipientID: "8", IsValid: true},
		{Token: "t3", RecipientType: models.RecipientTeacher, RecipientID: "3", IsValid: true},
		{Token: "stale", RecipientType: models.RecipientStudent, RecipientID: "7", IsValid: true},
	}
	for i := range seed {
		require.NoError(t, repo.Upsert(context.Background(), &seed[i]))
	}
	require.NoError(t, db.Model(&models.DeviceToken{}).Where("token = ?", "stale").Update("is_valid", false).Error)

	devices, err := repo.ListValidForRecipient(context.Background(), models.RecipientStudent, "7")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	require.Equal(t, "s7", devices[0].Token)

	devices, err = repo.ListValidForRecipient(context.Background(), models.RecipientStudents, models.RecipientAllID)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	devices, err = repo.ListValidForRecipient(context.Background(), models.RecipientAll, models.RecipientAllID)
	require.NoError(t, err)
	require.Len(t, devices, 3)
}
