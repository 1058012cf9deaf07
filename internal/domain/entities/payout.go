package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PayoutStatus represents payout status
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusCompleted PayoutStatus = "completed"
	PayoutStatusFailed    PayoutStatus = "failed"
)

// Payout represents a batch disbursement to a business
type Payout struct {
	ID                  uuid.UUID       `json:"id"`
	BusinessID          uuid.UUID       `json:"businessId"`
	Amount              decimal.Decimal `json:"amount"`
	Status              PayoutStatus    `json:"status"`
	Description         string          `json:"description"`
	ExternalTransferRef null.String     `json:"externalTransferRef,omitempty"`
	PeriodStart         time.Time       `json:"periodStart"`
	PeriodEnd           time.Time       `json:"periodEnd"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`

	LineItems []*PayoutLineItem `json:"lineItems,omitempty"`
}

// PayoutLineItem traces a disbursed amount back to the booking that funded
// it.
type PayoutLineItem struct {
	ID        uuid.UUID       `json:"id"`
	PayoutID  uuid.UUID       `json:"payoutId"`
	BookingID uuid.UUID       `json:"bookingId"`
	StaffID   *uuid.UUID      `json:"staffId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// StaffAllocation is one roster entry of the payout allocation report
type StaffAllocation struct {
	StaffID        uuid.UUID       `json:"staffId"`
	DisplayName    string          `json:"displayName"`
	IsOwner        bool            `json:"isOwner"`
	PolicyKind     PayoutPolicyKind `json:"policyKind"`
	PolicyValue    decimal.Decimal `json:"policyValue"`
	BookingCount   int             `json:"bookingCount"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	WindowEarnings decimal.Decimal `json:"windowEarnings"`
}

// AllocationTotals aggregates the tenant-level money flows of a report
type AllocationTotals struct {
	TotalGross       decimal.Decimal `json:"totalGross"`
	TotalNet         decimal.Decimal `json:"totalNet"`
	PlatformFees     decimal.Decimal `json:"platformFees"`
	StaffTotal       decimal.Decimal `json:"staffTotal"`
	StaffWindowTotal decimal.Decimal `json:"staffWindowTotal"`
	OwnerTotal       decimal.Decimal `json:"ownerTotal"`
	OwnerWindowTotal decimal.Decimal `json:"ownerWindowTotal"`
}

// AllocationReport is the full output of the payout allocation engine
type AllocationReport struct {
	Allocations []*StaffAllocation `json:"allocations"`
	Totals      AllocationTotals   `json:"totals"`
	AsOf        time.Time          `json:"asOf"`
}

// FundsSnapshot classifies a business's money at a point in time
type FundsSnapshot struct {
	Available       decimal.Decimal `json:"available"`
	Pending         decimal.Decimal `json:"pending"`
	ReadyToComplete decimal.Decimal `json:"readyToComplete"`
	AsOf            time.Time       `json:"asOf"`
}

// RequestPayoutInput represents input for requesting a disbursement
type RequestPayoutInput struct {
	Description string `json:"description,omitempty"`
}
