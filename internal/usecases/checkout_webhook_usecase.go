package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"trimly.backend/internal/config"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/utils"
)

// CheckoutCompletedEvent is the processor's async confirmation of a
// customer checkout. FeeRatePercent is the rate quoted at checkout time;
// the settlement split uses it verbatim, never a fresh lookup.
type CheckoutCompletedEvent struct {
	BusinessID     string    `json:"businessId" binding:"required,uuid"`
	ServiceID      string    `json:"serviceId" binding:"required,uuid"`
	StaffID        string    `json:"staffId,omitempty"`
	CustomerName   string    `json:"customerName" binding:"required"`
	CustomerEmail  string    `json:"customerEmail,omitempty"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	EndTime        time.Time `json:"endTime" binding:"required"`
	GrossAmount    string    `json:"grossAmount" binding:"required"`
	FeeRatePercent string    `json:"feeRatePercent" binding:"required"`
	ChargeRef      string    `json:"chargeRef" binding:"required"`
}

// CheckoutWebhookUsecase turns processor checkout confirmations into
// confirmed bookings with settled payments
type CheckoutWebhookUsecase struct {
	bookingRepo repositories.BookingRepository
	paymentRepo repositories.PaymentRepository
	uow         repositories.UnitOfWork
	cfg         config.PaymentsConfig
}

// NewCheckoutWebhookUsecase creates a new checkout webhook usecase
func NewCheckoutWebhookUsecase(
	bookingRepo repositories.BookingRepository,
	paymentRepo repositories.PaymentRepository,
	uow repositories.UnitOfWork,
	cfg config.PaymentsConfig,
) *CheckoutWebhookUsecase {
	return &CheckoutWebhookUsecase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		uow:         uow,
		cfg:         cfg,
	}
}

// VerifySignature checks the hex-encoded HMAC-SHA256 signature the
// processor sends over the raw request body.
func (u *CheckoutWebhookUsecase) VerifySignature(body []byte, signature string) bool {
	if u.cfg.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(u.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleCheckoutCompleted creates the booking and its payment from a
// verified checkout event. The slot is re-checked inside the same locked
// transaction that inserts; a slot lost since checkout fails with a
// conflict and leaves the refund to the processor.
func (u *CheckoutWebhookUsecase) HandleCheckoutCompleted(ctx context.Context, event *CheckoutCompletedEvent) (*entities.Booking, error) {
	if !event.EndTime.After(event.StartTime) {
		return nil, domainerrors.Unprocessable("endTime must be after startTime", domainerrors.ErrInvalidTimeRange)
	}
	businessID, err := uuid.Parse(event.BusinessID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid business id")
	}
	serviceID, err := uuid.Parse(event.ServiceID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid service id")
	}
	var staffID *uuid.UUID
	if event.StaffID != "" {
		id, err := uuid.Parse(event.StaffID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid staff id")
		}
		staffID = &id
	}
	gross, err := decimal.NewFromString(event.GrossAmount)
	if err != nil || !gross.IsPositive() {
		return nil, domainerrors.BadRequest("invalid gross amount")
	}
	ratePercent, err := decimal.NewFromString(event.FeeRatePercent)
	if err != nil || ratePercent.IsNegative() {
		return nil, domainerrors.BadRequest("invalid fee rate")
	}
	rate := ratePercent.Div(oneHundred)

	booking := &entities.Booking{
		ID:           utils.GenerateUUIDv7(),
		BusinessID:   businessID,
		ServiceID:    serviceID,
		StaffID:      staffID,
		CustomerName: event.CustomerName,
		StartTime:    event.StartTime,
		EndTime:      event.EndTime,
		Status:       entities.BookingStatusConfirmed,
		TotalAmount:  gross,
	}
	if event.CustomerEmail != "" {
		booking.CustomerEmail = null.StringFrom(event.CustomerEmail)
	}

	platformFee, businessAmount := SplitForRate(gross, rate)
	payment := &entities.Payment{
		ID:                 utils.GenerateUUIDv7(),
		BookingID:          booking.ID,
		Amount:             gross,
		PlatformFee:        platformFee,
		BusinessAmount:     businessAmount,
		FeeRateSnapshot:    rate,
		Status:             entities.PaymentStatusCompleted,
		ProcessorChargeRef: null.StringFrom(event.ChargeRef),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)
		if staffID != nil {
			conflict, err := u.bookingRepo.HasConflict(txCtx, *staffID, event.StartTime, event.EndTime)
			if err != nil {
				return err
			}
			if conflict {
				return domainerrors.Conflict("time slot was taken before payment settled", domainerrors.ErrSlotUnavailable)
			}
		}
		if err := u.bookingRepo.Create(txCtx, booking); err != nil {
			return err
		}
		return u.paymentRepo.Create(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}
	booking.Payments = []*entities.Payment{payment}

	logger.Info(ctx, "checkout settled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("charge_ref", event.ChargeRef),
		zap.String("platform_fee", platformFee.String()))
	return booking, nil
}
