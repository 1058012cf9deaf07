package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"trimly.backend/internal/config"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/utils"
)

// PayoutUsecase records disbursements to businesses
type PayoutUsecase struct {
	payoutRepo  repositories.PayoutRepository
	bookingRepo repositories.BookingRepository
	fundsUC     *FundsUsecase
	feeResolver *FeeResolver
	uow         repositories.UnitOfWork
	cfg         config.PaymentsConfig
	now         func() time.Time
}

// NewPayoutUsecase creates a new payout usecase
func NewPayoutUsecase(
	payoutRepo repositories.PayoutRepository,
	bookingRepo repositories.BookingRepository,
	fundsUC *FundsUsecase,
	feeResolver *FeeResolver,
	uow repositories.UnitOfWork,
	cfg config.PaymentsConfig,
) *PayoutUsecase {
	return &PayoutUsecase{
		payoutRepo:  payoutRepo,
		bookingRepo: bookingRepo,
		fundsUC:     fundsUC,
		feeResolver: feeResolver,
		uow:         uow,
		cfg:         cfg,
		now:         time.Now,
	}
}

// RequestPayout records a pending disbursement for the business's currently
// available funds. The payout carries its reporting period and one line
// item per completed booking in that period, so every disbursed amount is
// traceable to the bookings that funded it. The balance is read and the
// payout written inside one locked transaction: two concurrent requests
// cannot both disburse the same funds.
func (u *PayoutUsecase) RequestPayout(ctx context.Context, businessID uuid.UUID, description string) (*entities.Payout, error) {
	now := u.now().UTC()
	if description == "" {
		description = "Payout of available funds"
	}

	var payout *entities.Payout
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)

		snapshot, err := u.fundsUC.Snapshot(txCtx, businessID, now)
		if err != nil {
			return err
		}
		if !snapshot.Available.IsPositive() {
			return domainerrors.Unprocessable("no funds available for payout", domainerrors.ErrPayoutAmountNonPositive)
		}

		rate, err := u.feeResolver.Resolve(txCtx, businessID)
		if err != nil {
			return err
		}

		payout = &entities.Payout{
			ID:          utils.GenerateUUIDv7(),
			BusinessID:  businessID,
			Amount:      snapshot.Available,
			Status:      entities.PayoutStatusPending,
			Description: description,
			PeriodStart: now.Add(-u.cfg.PayoutLookback),
			PeriodEnd:   now,
		}

		completed, err := u.bookingRepo.ListByStatuses(txCtx, businessID, []entities.BookingStatus{entities.BookingStatusCompleted})
		if err != nil {
			return err
		}
		var items []*entities.PayoutLineItem
		for _, b := range completed {
			if b.CreatedAt.Before(payout.PeriodStart) || b.CreatedAt.After(payout.PeriodEnd) {
				continue
			}
			items = append(items, &entities.PayoutLineItem{
				ID:        utils.GenerateUUIDv7(),
				PayoutID:  payout.ID,
				BookingID: b.ID,
				StaffID:   b.StaffID,
				Amount:    bookingNet(b, rate).Round(2),
			})
		}

		if err := u.payoutRepo.Create(txCtx, payout); err != nil {
			return err
		}
		if err := u.payoutRepo.CreateLineItems(txCtx, items); err != nil {
			return err
		}
		payout.LineItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payout requested",
		zap.String("payout_id", payout.ID.String()),
		zap.String("business_id", businessID.String()),
		zap.String("amount", payout.Amount.String()))
	return payout, nil
}

// ConfirmPayout applies the processor's transfer result. Repeated
// confirmations of the same payout are no-ops.
func (u *PayoutUsecase) ConfirmPayout(ctx context.Context, payoutID uuid.UUID, transferRef string, succeeded bool) (*entities.Payout, error) {
	status := entities.PayoutStatusCompleted
	if !succeeded {
		status = entities.PayoutStatusFailed
	}
	if err := u.payoutRepo.Confirm(ctx, payoutID, status, transferRef); err != nil {
		return nil, err
	}
	return u.payoutRepo.GetByID(ctx, payoutID)
}

// GetPayout returns a payout with its line items
func (u *PayoutUsecase) GetPayout(ctx context.Context, businessID, payoutID uuid.UUID) (*entities.Payout, error) {
	payout, err := u.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.BusinessID != businessID {
		return nil, domainerrors.NotFound("payout not found")
	}
	items, err := u.payoutRepo.ListLineItems(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	payout.LineItems = items
	return payout, nil
}

// ListPayouts returns a page of the business's payouts
func (u *PayoutUsecase) ListPayouts(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Payout, int64, error) {
	return u.payoutRepo.ListByBusiness(ctx, businessID, limit, offset)
}
