package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/utils"
)

// BusinessUsecase handles tenant onboarding and the service catalog
type BusinessUsecase struct {
	businessRepo repositories.BusinessRepository
	resellerRepo repositories.ResellerRepository
	serviceRepo  repositories.ServiceRepository
	staffRepo    repositories.StaffRepository
}

// NewBusinessUsecase creates a new business usecase
func NewBusinessUsecase(
	businessRepo repositories.BusinessRepository,
	resellerRepo repositories.ResellerRepository,
	serviceRepo repositories.ServiceRepository,
	staffRepo repositories.StaffRepository,
) *BusinessUsecase {
	return &BusinessUsecase{
		businessRepo: businessRepo,
		resellerRepo: resellerRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
	}
}

// RegisterBusiness creates a pending business for the authenticated owner
// and seeds its owner staff record, so the allocation roster always has an
// explicit owner entry.
func (u *BusinessUsecase) RegisterBusiness(ctx context.Context, ownerUserID uuid.UUID, ownerName string, input *entities.RegisterBusinessInput) (*entities.Business, error) {
	if _, err := u.businessRepo.GetBySlug(ctx, input.Slug); err == nil {
		return nil, domainerrors.Conflict("slug is already taken", domainerrors.ErrAlreadyExists)
	}

	business := &entities.Business{
		ID:          utils.GenerateUUIDv7(),
		OwnerUserID: ownerUserID,
		Name:        input.Name,
		Slug:        input.Slug,
		Currency:    input.Currency,
		Status:      entities.BusinessStatusPending,
	}
	if input.FeeRatePercent != nil {
		business.FeeRatePercent = null.Float64From(*input.FeeRatePercent)
	}
	if input.ResellerID != "" {
		resellerID, err := uuid.Parse(input.ResellerID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid reseller id")
		}
		if _, err := u.resellerRepo.GetByID(ctx, resellerID); err != nil {
			return nil, err
		}
		business.IsWhiteLabel = true
		business.ResellerID = &resellerID
	}

	if err := u.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	if ownerName == "" {
		ownerName = "Owner"
	}
	owner := &entities.StaffMember{
		ID:          utils.GenerateUUIDv7(),
		BusinessID:  business.ID,
		UserID:      &ownerUserID,
		DisplayName: ownerName,
		Role:        entities.StaffRoleOwner,
		Active:      true,
	}
	if err := u.staffRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	logger.Info(ctx, "business registered",
		zap.String("business_id", business.ID.String()),
		zap.String("slug", business.Slug),
		zap.Bool("white_label", business.IsWhiteLabel))
	return business, nil
}

// GetBusiness returns a business by id
func (u *BusinessUsecase) GetBusiness(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	return u.businessRepo.GetByID(ctx, id)
}

// GetBusinessBySlug returns a business by its public slug
func (u *BusinessUsecase) GetBusinessBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	return u.businessRepo.GetBySlug(ctx, slug)
}

// ListBusinesses returns a page of businesses
func (u *BusinessUsecase) ListBusinesses(ctx context.Context, limit, offset int) ([]*entities.Business, int64, error) {
	return u.businessRepo.List(ctx, limit, offset)
}

// ActivateBusiness moves a pending business to active
func (u *BusinessUsecase) ActivateBusiness(ctx context.Context, id uuid.UUID) error {
	return u.businessRepo.UpdateStatus(ctx, id, entities.BusinessStatusActive)
}

// SuspendBusiness suspends a business
func (u *BusinessUsecase) SuspendBusiness(ctx context.Context, id uuid.UUID) error {
	return u.businessRepo.UpdateStatus(ctx, id, entities.BusinessStatusSuspended)
}

// UpdateFeeRate sets the business's own platform fee percentage. White-label
// businesses resolve their rate from the reseller, so the override is
// rejected for them.
func (u *BusinessUsecase) UpdateFeeRate(ctx context.Context, id uuid.UUID, percent float64) (*entities.Business, error) {
	if percent < 0 || percent > 100 {
		return nil, domainerrors.BadRequest("fee rate must be between 0 and 100")
	}
	business, err := u.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business.IsWhiteLabel {
		return nil, domainerrors.Unprocessable("white-label businesses inherit the reseller fee rate", domainerrors.ErrInvalidInput)
	}
	business.FeeRatePercent = null.Float64From(percent)
	if err := u.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// CreateService adds a service to the business catalog
func (u *BusinessUsecase) CreateService(ctx context.Context, businessID uuid.UUID, input *entities.CreateServiceInput) (*entities.Service, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		return nil, domainerrors.BadRequest("invalid price")
	}
	service := &entities.Service{
		ID:              utils.GenerateUUIDv7(),
		BusinessID:      businessID,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		Price:           price,
		Active:          true,
	}
	if err := u.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// ListServices returns the business's service catalog
func (u *BusinessUsecase) ListServices(ctx context.Context, businessID uuid.UUID) ([]*entities.Service, error) {
	return u.serviceRepo.ListByBusiness(ctx, businessID)
}
