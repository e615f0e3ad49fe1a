// Package payment holds recurring payments detected by analysis.
package payment

import (
	"fmt"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
)

// Frequency is how often a payment recurs.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
)

// Status is the user-controlled state of a payment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusPaused    Status = "paused"
)

// DefaultCategory is used when analysis leaves the category empty.
const DefaultCategory = "other"

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusCancelled, StatusPaused:
		return st, nil
	default:
		return "", fmt.Errorf("%w: invalid payment status %q", domain.ErrValidation, s)
	}
}

// ParseFrequency validates s against the known frequencies.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyMonthly, FrequencyYearly, FrequencyWeekly, FrequencyBiWeekly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: invalid payment frequency %q", domain.ErrValidation, s)
	}
}

// RecurringPayment is a detected subscription or repeating charge.
type RecurringPayment struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"userId"`
	MerchantName    string       `json:"merchantName"`
	Amount          money.Amount `json:"amount"`
	Frequency       Frequency    `json:"frequency"`
	Category        string       `json:"category"`
	Status          Status       `json:"status"`
	Confidence      float64      `json:"confidence"`
	DetectedDate    time.Time    `json:"detectedDate"`
	LastPaymentDate *time.Time   `json:"lastPaymentDate,omitempty"`
	NextPaymentDate *time.Time   `json:"nextPaymentDate,omitempty"`
	UploadID        *uuid.UUID   `json:"uploadId,omitempty"`
}

// NewDetected creates an active payment found in the given upload.
func NewDetected(
	userID, uploadID uuid.UUID,
	merchant string,
	amount money.Amount,
	freq Frequency,
	category string,
	confidence float64,
) *RecurringPayment {
	if category == "" {
		category = DefaultCategory
	}
	return &RecurringPayment{
		ID:           uuid.New(),
		UserID:       userID,
		MerchantName: merchant,
		Amount:       amount,
		Frequency:    freq,
		Category:     category,
		Status:       StatusActive,
		Confidence:   confidence,
		DetectedDate: time.Now().UTC(),
		UploadID:     &uploadID,
	}
}

// IsActive reports whether the payment is active.
func (p *RecurringPayment) IsActive() bool { return p.Status == StatusActive }

// IsMonthlyActive reports whether the payment is active and billed monthly.
func (p *RecurringPayment) IsMonthlyActive() bool {
	return p.Status == StatusActive && p.Frequency == FrequencyMonthly
}
