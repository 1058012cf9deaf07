package repositories

import (
	"context"

	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
)

// PayoutRepository defines disbursement data operations
type PayoutRepository interface {
	Create(ctx context.Context, payout *entities.Payout) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payout, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Payout, int64, error)
	// Confirm transitions a pending payout to completed or failed and
	// records the processor's transfer reference.
	Confirm(ctx context.Context, id uuid.UUID, status entities.PayoutStatus, transferRef string) error
	CreateLineItems(ctx context.Context, items []*entities.PayoutLineItem) error
	ListLineItems(ctx context.Context, payoutID uuid.UUID) ([]*entities.PayoutLineItem, error)
}
