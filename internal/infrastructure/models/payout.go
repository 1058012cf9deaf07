package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payout struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status              string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Description         string          `gorm:"type:text"`
	ExternalTransferRef *string         `gorm:"type:varchar(255)"`
	PeriodStart         time.Time       `gorm:"not null"`
	PeriodEnd           time.Time       `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	LineItems []PayoutLineItem `gorm:"foreignKey:PayoutID"`
}

func (Payout) TableName() string { return "payouts" }

type PayoutLineItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayoutID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookingID uuid.UUID       `gorm:"type:uuid;not null"`
	StaffID   *uuid.UUID      `gorm:"type:uuid"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (PayoutLineItem) TableName() string { return "payout_line_items" }
