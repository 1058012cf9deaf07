package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StaffMember struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	DisplayName       string     `gorm:"type:varchar(255);not null"`
	Role              string     `gorm:"type:varchar(20);not null;default:'staff'"`
	PayoutPolicyKind  *string    `gorm:"type:varchar(40)"`
	PayoutPolicyValue *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Active            bool       `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (StaffMember) TableName() string { return "staff_members" }

type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	DurationMinutes int             `gorm:"not null"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Service) TableName() string { return "services" }
