package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BusinessStatus represents the onboarding status of a business
type BusinessStatus string

const (
	BusinessStatusPending   BusinessStatus = "pending"
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// Business represents a tenant: a salon or an individual practitioner.
// A white-label business resolves its platform fee from its reseller
// instead of its own FeeRatePercent.
type Business struct {
	ID             uuid.UUID      `json:"id"`
	OwnerUserID    uuid.UUID      `json:"ownerUserId"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Currency       string         `json:"currency"`
	FeeRatePercent null.Float64   `json:"feeRatePercent,omitempty"`
	IsWhiteLabel   bool           `json:"isWhiteLabel"`
	ResellerID     *uuid.UUID     `json:"resellerId,omitempty"`
	Status         BusinessStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Reseller represents a white-label operator reselling the platform under
// its own brand.
type Reseller struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	PlatformFeePercent null.Float64 `json:"platformFeePercent,omitempty"`
	BrandDomain        null.String  `json:"brandDomain,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// ResellerAPIKey authenticates reseller console calls. Only the bcrypt hash
// of the secret is stored.
type ResellerAPIKey struct {
	ID         uuid.UUID `json:"id"`
	ResellerID uuid.UUID `json:"resellerId"`
	KeyPrefix  string    `json:"keyPrefix"`
	KeyHash    string    `json:"-"`
	Active     bool      `json:"active"`
	LastUsedAt null.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RegisterBusinessInput represents input for registering a business
type RegisterBusinessInput struct {
	Name           string   `json:"name" binding:"required,min=2,max=255"`
	Slug           string   `json:"slug" binding:"required,min=2,max=64"`
	Currency       string   `json:"currency" binding:"required,len=3"`
	FeeRatePercent *float64 `json:"feeRatePercent,omitempty"`
	ResellerID     string   `json:"resellerId,omitempty"`
}

// CreateResellerInput represents input for creating a reseller
type CreateResellerInput struct {
	Name               string   `json:"name" binding:"required,min=2,max=255"`
	PlatformFeePercent *float64 `json:"platformFeePercent,omitempty"`
	BrandDomain        string   `json:"brandDomain,omitempty"`
}
