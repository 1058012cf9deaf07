package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment represents money collected for a booking. PlatformFee and
// BusinessAmount are split from Amount using FeeRateSnapshot, the rate
// resolved once at quote time; settlement never re-resolves it.
type Payment struct {
	ID                 uuid.UUID       `json:"id"`
	BookingID          uuid.UUID       `json:"bookingId"`
	Amount             decimal.Decimal `json:"amount"`
	PlatformFee        decimal.Decimal `json:"platformFee"`
	BusinessAmount     decimal.Decimal `json:"businessAmount"`
	FeeRateSnapshot    decimal.Decimal `json:"feeRateSnapshot"`
	Status             PaymentStatus   `json:"status"`
	ProcessorChargeRef null.String     `json:"processorChargeRef,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// FeeQuote is the customer-visible fee breakdown returned at checkout time
type FeeQuote struct {
	GrossAmount    decimal.Decimal `json:"grossAmount"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	BusinessAmount decimal.Decimal `json:"businessAmount"`
	FeeRate        decimal.Decimal `json:"feeRate"`
}
