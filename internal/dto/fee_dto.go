package dto

import (
	"time"

	"github.com/campuskit/school-api/internal/models"
)

// FeeTransactionCreateRequest records a completed fee payment for a student.
type FeeTransactionCreateRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Method          string  `json:"method" validate:"required,oneof=cash upi card netbanking cheque"`
	ReferenceNumber string  `json:"reference_number" validate:"required,max=128"`
	PaymentDate     string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

// FeeTransactionResponse serializes one transaction. Status is always
// "completed"; the row carries no status column.
type FeeTransactionResponse struct {
	ID              uint      `json:"id"`
	EnrollmentID    uint      `json:"enrollment_id"`
	Amount          float64   `json:"amount"`
	Method          string    `json:"method"`
	ReferenceNumber string    `json:"reference_number"`
	PaymentDate     time.Time `json:"payment_date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewFeeTransactionResponse converts a transaction model into a DTO.
func NewFeeTransactionResponse(transaction models.FeeTransaction) FeeTransactionResponse {
	return FeeTransactionResponse{
		ID:              transaction.ID,
		EnrollmentID:    transaction.EnrollmentID,
		Amount:          transaction.Amount,
		Method:          transaction.Method,
		ReferenceNumber: transaction.ReferenceNumber,
		PaymentDate:     transaction.PaymentDate,
		Status:          "completed",
		CreatedAt:       transaction.CreatedAt,
	}
}

// FeeFilterOptionsResponse lists the accepted filter values for fee screens.
// PaymentGateways intentionally mirrors PaymentModes; the client consumes both
// keys from the same set.
type FeeFilterOptionsResponse struct {
	PaymentModes    []string `json:"payment_modes"`
	PaymentGateways []string `json:"payment_gateways"`
}
