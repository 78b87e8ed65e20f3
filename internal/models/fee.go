package models

import "time"

// Payment modes accepted for fee transactions.
var PaymentModes = []string{"cash", "upi", "card", "netbanking", "cheque"}

// FeeTransaction records a completed fee payment against an enrollment.
// There is no status column; every stored transaction is treated as completed.
type FeeTransaction struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	EnrollmentID    uint               `gorm:"index;not null" json:"enrollment_id"`
	Amount          float64            `gorm:"not null" json:"amount"`
	Method          string             `gorm:"size:32;not null" json:"method"`
	ReferenceNumber string             `gorm:"size:128;not null" json:"reference_number"`
	PaymentDate     time.Time          `json:"payment_date"`
	Enrollment      *StudentEnrollment `json:"enrollment,omitempty"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
}
