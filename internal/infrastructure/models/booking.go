package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID        uuid.UUID  `gorm:"type:uuid;not null"`
	StaffID          *uuid.UUID `gorm:"type:uuid;index:idx_bookings_staff_time"`
	CustomerName     string     `gorm:"type:varchar(255);not null"`
	CustomerEmail    *string    `gorm:"type:varchar(255)"`
	StartTime        time.Time  `gorm:"not null;index:idx_bookings_staff_time"`
	EndTime          time.Time  `gorm:"not null"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CompletedAt      *time.Time
	FundsAvailableAt *time.Time `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Payments []Payment `gorm:"foreignKey:BookingID"`
}

func (Booking) TableName() string { return "bookings" }

type Payment struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PlatformFee        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BusinessAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FeeRateSnapshot    decimal.Decimal `gorm:"type:decimal(8,6);not null"`
	Status             string          `gorm:"type:varchar(20);not null;default:'pending'"`
	ProcessorChargeRef *string         `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Payment) TableName() string { return "payments" }
