package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/utils"
)

// StaffUsecase manages a business's staff roster and payout policies
type StaffUsecase struct {
	staffRepo   repositories.StaffRepository
	bookingRepo repositories.BookingRepository
	uow         repositories.UnitOfWork
}

// NewStaffUsecase creates a new staff usecase
func NewStaffUsecase(
	staffRepo repositories.StaffRepository,
	bookingRepo repositories.BookingRepository,
	uow repositories.UnitOfWork,
) *StaffUsecase {
	return &StaffUsecase{
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
		uow:         uow,
	}
}

// AddStaff adds a staff member to the roster. At most one owner record is
// allowed per business.
func (u *StaffUsecase) AddStaff(ctx context.Context, businessID uuid.UUID, input *entities.AddStaffInput) (*entities.StaffMember, error) {
	role := entities.StaffRoleStaff
	if input.Role == string(entities.StaffRoleOwner) {
		existing, err := u.staffRepo.ListByBusiness(ctx, businessID)
		if err != nil {
			return nil, err
		}
		for _, s := range existing {
			if s.IsOwner() {
				return nil, domainerrors.Conflict("business already has an owner", domainerrors.ErrAlreadyExists)
			}
		}
		role = entities.StaffRoleOwner
	}

	staff := &entities.StaffMember{
		ID:          utils.GenerateUUIDv7(),
		BusinessID:  businessID,
		DisplayName: input.DisplayName,
		Role:        role,
		Active:      true,
	}
	if input.UserID != "" {
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid user id")
		}
		staff.UserID = &userID
	}
	if err := u.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ListStaff returns the business's roster
func (u *StaffUsecase) ListStaff(ctx context.Context, businessID uuid.UUID) ([]*entities.StaffMember, error) {
	return u.staffRepo.ListByBusiness(ctx, businessID)
}

// SetPayoutPolicy configures how a staff member's earnings are computed.
// The owner's policy is fixed at the full net of their own bookings and
// cannot be overridden.
func (u *StaffUsecase) SetPayoutPolicy(ctx context.Context, businessID, staffID uuid.UUID, input *entities.SetPayoutPolicyInput) (*entities.StaffMember, error) {
	staff, err := u.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.BusinessID != businessID {
		return nil, domainerrors.NotFound("staff member not found")
	}
	if staff.IsOwner() {
		return nil, domainerrors.Unprocessable("owner earnings are not policy-driven", domainerrors.ErrInvalidInput)
	}

	value, err := decimal.NewFromString(input.Value)
	if err != nil || value.IsNegative() {
		return nil, domainerrors.BadRequest("invalid policy value")
	}
	switch input.Kind {
	case entities.PolicyPercentOfOwnBookings, entities.PolicyPercentOfTenantTotal:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domainerrors.BadRequest("percentage cannot exceed 100")
		}
	case entities.PolicyFixedPerWeek, entities.PolicyFixedPerDay:
	default:
		return nil, domainerrors.BadRequest("unknown policy kind")
	}

	policy := &entities.PayoutPolicy{Kind: input.Kind, Value: value}
	if err := u.staffRepo.SetPayoutPolicy(ctx, staffID, policy); err != nil {
		return nil, err
	}
	staff.PayoutPolicy = policy

	logger.Info(ctx, "payout policy updated",
		zap.String("staff_id", staffID.String()),
		zap.String("kind", string(input.Kind)),
		zap.String("value", value.String()))
	return staff, nil
}

// RemoveStaff soft-deletes a staff member and detaches them from their
// bookings, which moves that revenue into the owner bucket. The owner
// record cannot be removed.
func (u *StaffUsecase) RemoveStaff(ctx context.Context, businessID, staffID uuid.UUID) error {
	staff, err := u.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if staff.BusinessID != businessID {
		return domainerrors.NotFound("staff member not found")
	}
	if staff.IsOwner() {
		return domainerrors.Unprocessable("cannot remove the business owner", domainerrors.ErrInvalidInput)
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.staffRepo.SoftDelete(txCtx, staffID); err != nil {
			return err
		}
		return u.bookingRepo.ClearStaff(txCtx, staffID)
	})
}
