package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/domain/repositories"
)

// FundsUsecase projects a business's money into availability buckets.
// It is read-only and recomputed on demand.
type FundsUsecase struct {
	bookingRepo repositories.BookingRepository
	feeResolver *FeeResolver
}

// NewFundsUsecase creates a new funds usecase
func NewFundsUsecase(bookingRepo repositories.BookingRepository, feeResolver *FeeResolver) *FundsUsecase {
	return &FundsUsecase{
		bookingRepo: bookingRepo,
		feeResolver: feeResolver,
	}
}

// Snapshot classifies the business's money as of the given instant:
// available is the net of completed bookings whose hold has elapsed,
// pending is the gross of bookings not yet worked to completion, and
// readyToComplete is the gross of bookings whose service time has elapsed
// but that nobody settled yet. The fee comes from the payment's stored
// rate snapshot when the booking has one, else from the current rate.
func (u *FundsUsecase) Snapshot(ctx context.Context, businessID uuid.UUID, asOf time.Time) (*entities.FundsSnapshot, error) {
	rate, err := u.feeResolver.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}

	completed, err := u.bookingRepo.ListByStatuses(ctx, businessID, []entities.BookingStatus{entities.BookingStatusCompleted})
	if err != nil {
		return nil, err
	}
	open, err := u.bookingRepo.ListByStatuses(ctx, businessID, []entities.BookingStatus{
		entities.BookingStatusPending,
		entities.BookingStatusConfirmed,
		entities.BookingStatusInProgress,
	})
	if err != nil {
		return nil, err
	}

	var available, pending, ready decimal.Decimal
	for _, b := range completed {
		if !b.FundsAvailableAt.Valid || b.FundsAvailableAt.Time.After(asOf) {
			continue
		}
		available = available.Add(bookingNet(b, rate))
	}
	for _, b := range open {
		pending = pending.Add(b.TotalAmount)
		if b.Status != entities.BookingStatusPending && !b.EndTime.After(asOf) {
			ready = ready.Add(b.TotalAmount)
		}
	}

	return &entities.FundsSnapshot{
		Available:       available.Round(2),
		Pending:         pending.Round(2),
		ReadyToComplete: ready.Round(2),
		AsOf:            asOf,
	}, nil
}

// bookingNet returns the booking's amount net of platform fee, preferring
// the rate snapshot captured on its payment at quote time.
func bookingNet(b *entities.Booking, currentRate decimal.Decimal) decimal.Decimal {
	for _, p := range b.Payments {
		if p.Status == entities.PaymentStatusCompleted && !p.FeeRateSnapshot.IsZero() {
			return p.Amount.Sub(p.PlatformFee)
		}
	}
	fee := b.TotalAmount.Mul(currentRate)
	return b.TotalAmount.Sub(fee)
}
