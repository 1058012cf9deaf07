package repositories

import (
	"context"

	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
)

// StaffRepository defines staff member data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entities.StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.StaffMember, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.StaffMember, error)
	SetPayoutPolicy(ctx context.Context, id uuid.UUID, policy *entities.PayoutPolicy) error
	Update(ctx context.Context, staff *entities.StaffMember) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ServiceRepository defines service catalog data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Service, error)
	Update(ctx context.Context, service *entities.Service) error
}
