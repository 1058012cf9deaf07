package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// BookingStatus represents booking status
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

// IsTerminal reports whether no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Booking represents a customer appointment with the half-open time range
// [StartTime, EndTime).
type Booking struct {
	ID               uuid.UUID     `json:"id"`
	BusinessID       uuid.UUID     `json:"businessId"`
	ServiceID        uuid.UUID     `json:"serviceId"`
	StaffID          *uuid.UUID    `json:"staffId,omitempty"`
	CustomerName     string        `json:"customerName"`
	CustomerEmail    null.String   `json:"customerEmail,omitempty"`
	StartTime        time.Time     `json:"startTime"`
	EndTime          time.Time     `json:"endTime"`
	Status           BookingStatus `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	CompletedAt      null.Time     `json:"completedAt,omitempty"`
	FundsAvailableAt null.Time     `json:"fundsAvailableAt,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`

	// Joins
	Payments []*Payment `json:"payments,omitempty"`
}

// CreateBookingInput represents input for a business-created booking
type CreateBookingInput struct {
	ServiceID     string `json:"serviceId" binding:"required,uuid"`
	StaffID       string `json:"staffId" binding:"required,uuid"`
	CustomerName  string `json:"customerName" binding:"required,min=1,max=255"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	TotalAmount   string    `json:"totalAmount,omitempty"`
}
