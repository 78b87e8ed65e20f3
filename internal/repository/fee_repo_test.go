package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/school-api/internal/models"
)

func TestFeeRepositoryDeleteScopedToEnrollment(t *testing.T) {
	db := setupTestDB(t, &models.FeeTransaction{})
	repo := NewFeeRepository(db)

	transaction := models.FeeTransaction{EnrollmentID: 5, Amount: 1200, Method: "upi", ReferenceNumber: "REF-1", PaymentDate: time.Now()}
	require.NoError(t, repo.Create(context.Background(), &transaction))

	// Wrong enrollment does not delete.
	affected, err := repo.Delete(context.Background(), transaction.ID, 6)
	require.NoError(t, err)
	require.Zero(t, affected)

	affected, err = repo.Delete(context.Background(), transaction.ID, 5)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
}

func TestFeeRepositoryListByEnrollment(t *testing.T) {
	db := setupTestDB(t, &models.FeeTransaction{})
	repo := NewFeeRepository(db)

	for i, enrollment := range []uint{5, 5, 9} {
		tx := models.FeeTransaction{EnrollmentID: enrollment, Amount: float64(100 * (i + 1)), Method: "cash", ReferenceNumber: "R", PaymentDate: time.Now()}
		require.NoError(t, repo.Create(context.Background(), &tx))
	}

	transactions, total, err := repo.List(context.Background(), FeeTransactionFilter{EnrollmentID: 5, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, transactions, 2)
}
