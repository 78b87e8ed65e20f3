package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// FeeTransactionFilter narrows fee transaction listings.
type FeeTransactionFilter struct {
	EnrollmentID uint
	Method       string
	Page         int
	Limit        int
}

// FeeRepository persists fee transactions.
type FeeRepository interface {
	Create(ctx context.Context, transaction *models.FeeTransaction) error
	FindByID(ctx context.Context, transactionID uint) (models.FeeTransaction, error)
	Delete(ctx context.Context, transactionID, enrollmentID uint) (int64, error)
	List(ctx context.Context, filter FeeTransactionFilter) ([]models.FeeTransaction, int64, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository constructs a repository backed by GORM.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, transaction *models.FeeTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *feeRepository) FindByID(ctx context.Context, transactionID uint) (models.FeeTransaction, error) {
	var transaction models.FeeTransaction
	if err := r.db.WithContext(ctx).First(&transaction, transactionID).Error; err != nil {
		return models.FeeTransaction{}, err
	}
	return transaction, nil
}

// Delete removes a transaction only when it belongs to the given enrollment,
// returning the number of rows affected.
func (r *feeRepository) Delete(ctx context.Context, transactionID, enrollmentID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND enrollment_id = ?", transactionID, enrollmentID).
		Delete(&models.FeeTransaction{})
	return result.RowsAffected, result.Error
}

func (r *feeRepository) List(ctx context.Context, filter FeeTransactionFilter) ([]models.FeeTransaction, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&models.FeeTransaction{})
	if filter.EnrollmentID != 0 {
		query = query.Where("enrollment_id = ?", filter.EnrollmentID)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.FeeTransaction
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
