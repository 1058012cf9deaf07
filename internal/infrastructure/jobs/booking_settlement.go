package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/logger"
)

const settlementBatchSize = 100

// BookingSettlementJob periodically completes bookings whose service time
// elapsed past the grace period. Bookings without a completed payment are
// skipped, never auto-completed; they stay in the readyToComplete bucket
// until an operator settles or cancels them.
type BookingSettlementJob struct {
	bookingRepo repositories.BookingRepository
	bookingUC   *usecases.BookingUsecase
	interval    time.Duration
	grace       time.Duration
	stop        chan struct{}
}

// NewBookingSettlementJob creates a new settlement job
func NewBookingSettlementJob(
	bookingRepo repositories.BookingRepository,
	bookingUC *usecases.BookingUsecase,
	interval, grace time.Duration,
) *BookingSettlementJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BookingSettlementJob{
		bookingRepo: bookingRepo,
		bookingUC:   bookingUC,
		interval:    interval,
		grace:       grace,
		stop:        make(chan struct{}),
	}
}

// Start runs the settlement loop until the context is cancelled or Stop is
// called.
func (j *BookingSettlementJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting booking settlement job",
		zap.Duration("interval", j.interval),
		zap.Duration("grace", j.grace))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "booking settlement job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "booking settlement job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// Stop signals the loop to exit
func (j *BookingSettlementJob) Stop() {
	close(j.stop)
}

// RunOnce settles one batch of elapsed bookings and returns how many were
// completed.
func (j *BookingSettlementJob) RunOnce(ctx context.Context) int {
	cutoff := time.Now().UTC().Add(-j.grace)
	elapsed, err := j.bookingRepo.ListSettleable(ctx, cutoff, settlementBatchSize)
	if err != nil {
		logger.Error(ctx, "failed to list settleable bookings", zap.Error(err))
		return 0
	}
	if len(elapsed) == 0 {
		return 0
	}

	settled := 0
	for _, b := range elapsed {
		if !hasCompletedPayment(b) {
			continue
		}
		if _, err := j.bookingUC.CompleteBooking(ctx, b.BusinessID, b.ID); err != nil {
			logger.Warn(ctx, "failed to auto-settle booking",
				zap.String("booking_id", b.ID.String()),
				zap.Error(err))
			continue
		}
		settled++
	}

	if settled > 0 {
		logger.Info(ctx, "auto-settled bookings", zap.Int("count", settled))
	}
	return settled
}

func hasCompletedPayment(b *entities.Booking) bool {
	for _, p := range b.Payments {
		if p.Status == entities.PaymentStatusCompleted {
			return true
		}
	}
	return false
}
