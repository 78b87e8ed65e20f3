package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/dto"
	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// FeeService manages fee transactions for a student's current enrollment.
type FeeService interface {
	CreateTransaction(ctx context.Context, studentID uint, payload dto.FeeTransactionCreateRequest) (dto.FeeTransactionResponse, error)
	DeleteTransaction(ctx context.Context, studentID, transactionID uint) error
	ListTransactions(ctx context.Context, studentID uint, page, limit int) ([]dto.FeeTransactionResponse, int64, error)
	FilterOptions() dto.FeeFilterOptionsResponse
}

type feeService struct {
	fees        repository.FeeRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewFeeService constructs a fee service.
func NewFeeService(fees repository.FeeRepository, enrollments repository.EnrollmentRepository, validate *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		fees:        fees,
		enrollments: enrollments,
		validator:   validate,
		logger:      logger.With().Str("component", "fee_service").Logger(),
	}
}

func (s *feeService) CreateTransaction(ctx context.Context, studentID uint, payload dto.FeeTransactionCreateRequest) (dto.FeeTransactionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeeTransactionResponse{}, err
	}

	paymentDate, err := time.Parse("2006-01-02", payload.PaymentDate)
	if err != nil {
		return dto.FeeTransactionResponse{}, utils.ErrValidation([]utils.FieldError{{Field: "payment_date", Message: "must be a valid date"}})
	}

	enrollment, err := s.resolveEnrollment(ctx, studentID)
	if err != nil {
		return dto.FeeTransactionResponse{}, err
	}

	transaction := models.FeeTransaction{
		EnrollmentID:    enrollment.ID,
		Amount:          payload.Amount,
		Method:          payload.Method,
		ReferenceNumber: payload.ReferenceNumber,
		PaymentDate:     paymentDate,
	}
	if err := s.fees.Create(ctx, &transaction); err != nil {
		return dto.FeeTransactionResponse{}, err
	}

	return dto.NewFeeTransactionResponse(transaction), nil
}

// DeleteTransaction removes the transaction only when it belongs to the
// student's current enrollment.
func (s *feeService) DeleteTransaction(ctx context.Context, studentID, transactionID uint) error {
	enrollment, err := s.resolveEnrollment(ctx, studentID)
	if err != nil {
		return err
	}

	affected, err := s.fees.Delete(ctx, transactionID, enrollment.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return utils.ErrNotFound("Transaction not found")
	}

	return nil
}

func (s *feeService) ListTransactions(ctx context.Context, studentID uint, page, limit int) ([]dto.FeeTransactionResponse, int64, error) {
	enrollment, err := s.resolveEnrollment(ctx, studentID)
	if err != nil {
		return nil, 0, err
	}

	transactions, total, err := s.fees.List(ctx, repository.FeeTransactionFilter{
		EnrollmentID: enrollment.ID,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.FeeTransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, dto.NewFeeTransactionResponse(transaction))
	}

	return responses, total, nil
}

// FilterOptions reports payment modes; the gateways key mirrors the same set.
func (s *feeService) FilterOptions() dto.FeeFilterOptionsResponse {
	return dto.FeeFilterOptionsResponse{
		PaymentModes:    models.PaymentModes,
		PaymentGateways: models.PaymentModes,
	}
}

func (s *feeService) resolveEnrollment(ctx context.Context, studentID uint) (models.StudentEnrollment, error) {
	enrollment, err := s.enrollments.ResolveLatest(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudentEnrollment{}, utils.ErrNotFound("Student enrollment not found")
		}
		return models.StudentEnrollment{}, err
	}
	return enrollment, nil
}
