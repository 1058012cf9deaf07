package repositories

import (
	"context"

	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
)

// BusinessRepository defines tenant data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Business, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Business, int64, error)
	Update(ctx context.Context, business *entities.Business) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error
}

// ResellerRepository defines white-label operator data operations
type ResellerRepository interface {
	Create(ctx context.Context, reseller *entities.Reseller) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Reseller, error)
	List(ctx context.Context) ([]*entities.Reseller, error)
	Update(ctx context.Context, reseller *entities.Reseller) error
}

// ResellerAPIKeyRepository defines reseller API key data operations
type ResellerAPIKeyRepository interface {
	Create(ctx context.Context, key *entities.ResellerAPIKey) error
	GetByPrefix(ctx context.Context, prefix string) (*entities.ResellerAPIKey, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
