package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Slug           string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Currency       string    `gorm:"type:char(3);not null;default:'USD'"`
	FeeRatePercent *float64  `gorm:"type:decimal(5,2)"`
	IsWhiteLabel   bool      `gorm:"not null;default:false"`
	ResellerID     *uuid.UUID `gorm:"type:uuid;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Business) TableName() string { return "businesses" }

type Reseller struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(255);not null"`
	PlatformFeePercent *float64  `gorm:"type:decimal(5,2)"`
	BrandDomain        *string   `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Reseller) TableName() string { return "resellers" }

type ResellerAPIKey struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResellerID uuid.UUID `gorm:"type:uuid;not null;index"`
	KeyPrefix  string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	KeyHash    string    `gorm:"type:varchar(255);not null"`
	Active     bool      `gorm:"not null;default:true"`
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

func (ResellerAPIKey) TableName() string { return "reseller_api_keys" }
