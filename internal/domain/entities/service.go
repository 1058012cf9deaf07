package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service represents a bookable offering of a business
type Service struct {
	ID              uuid.UUID       `json:"id"`
	BusinessID      uuid.UUID       `json:"businessId"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateServiceInput represents input for creating a service
type CreateServiceInput struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=5"`
	Price           string `json:"price" binding:"required"`
}
