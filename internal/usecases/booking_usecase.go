package usecases

import (
	"context"
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

// BookingUsecase handles the booking lifecycle
type BookingUsecase struct {
	bookingRepo repositories.BookingRepository
	paymentRepo repositories.PaymentRepository
	serviceRepo repositories.ServiceRepository
	staffRepo   repositories.StaffRepository
	uow         repositories.UnitOfWork
	cfg         config.PaymentsConfig
	now         func() time.Time
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	paymentRepo repositories.PaymentRepository,
	serviceRepo repositories.ServiceRepository,
	staffRepo repositories.StaffRepository,
	uow repositories.UnitOfWork,
	cfg config.PaymentsConfig,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		serviceRepo: serviceRepo,
		staffRepo:   staffRepo,
		uow:         uow,
		cfg:         cfg,
		now:         time.Now,
	}
}

// CreateBooking creates a pending booking after checking the staff
// member's calendar. The conflict check and the insert run in one locked
// transaction, so two concurrent requests for the same slot cannot both
// succeed.
func (u *BookingUsecase) CreateBooking(ctx context.Context, businessID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, domainerrors.Unprocessable("endTime must be after startTime", domainerrors.ErrInvalidTimeRange)
	}

	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid service id")
	}
	staffID, err := uuid.Parse(input.StaffID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid staff id")
	}

	service, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service.BusinessID != businessID {
		return nil, domainerrors.NotFound("service not found")
	}
	staff, err := u.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.BusinessID != businessID || !staff.Active {
		return nil, domainerrors.NotFound("staff member not found")
	}

	amount := service.Price
	if input.TotalAmount != "" {
		amount, err = decimal.NewFromString(input.TotalAmount)
		if err != nil || amount.IsNegative() {
			return nil, domainerrors.BadRequest("invalid total amount")
		}
	}

	booking := &entities.Booking{
		ID:           utils.GenerateUUIDv7(),
		BusinessID:   businessID,
		ServiceID:    serviceID,
		StaffID:      &staffID,
		CustomerName: input.CustomerName,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Status:       entities.BookingStatusPending,
		TotalAmount:  amount,
	}
	if input.CustomerEmail != "" {
		booking.CustomerEmail = null.StringFrom(input.CustomerEmail)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)
		conflict, err := u.bookingRepo.HasConflict(txCtx, staffID, input.StartTime, input.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return domainerrors.Conflict("time slot is no longer available", domainerrors.ErrSlotUnavailable)
		}
		return u.bookingRepo.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("business_id", businessID.String()))
	return booking, nil
}

// GetBooking returns a booking with its payments
func (u *BookingUsecase) GetBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BusinessID != businessID {
		return nil, domainerrors.NotFound("booking not found")
	}
	return booking, nil
}

// ListBookings returns a page of the business's bookings
func (u *BookingUsecase) ListBookings(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error) {
	return u.bookingRepo.ListByBusiness(ctx, businessID, limit, offset)
}

// ConfirmBooking moves a pending booking to confirmed
func (u *BookingUsecase) ConfirmBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	return u.transition(ctx, businessID, bookingID, entities.BookingStatusConfirmed, entities.BookingStatusPending)
}

// StartBooking moves a confirmed booking to in progress
func (u *BookingUsecase) StartBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	return u.transition(ctx, businessID, bookingID, entities.BookingStatusInProgress, entities.BookingStatusConfirmed)
}

// CancelBooking cancels a booking that has not been worked yet
func (u *BookingUsecase) CancelBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	return u.transition(ctx, businessID, bookingID, entities.BookingStatusCancelled,
		entities.BookingStatusPending, entities.BookingStatusConfirmed)
}

// MarkNoShow marks a confirmed booking whose customer never arrived
func (u *BookingUsecase) MarkNoShow(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	return u.transition(ctx, businessID, bookingID, entities.BookingStatusNoShow,
		entities.BookingStatusConfirmed, entities.BookingStatusInProgress)
}

func (u *BookingUsecase) transition(ctx context.Context, businessID, bookingID uuid.UUID, to entities.BookingStatus, from ...entities.BookingStatus) (*entities.Booking, error) {
	var booking *entities.Booking
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)
		var err error
		booking, err = u.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.BusinessID != businessID {
			return domainerrors.NotFound("booking not found")
		}
		allowed := false
		for _, s := range from {
			if booking.Status == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return domainerrors.Conflict("booking cannot transition from "+string(booking.Status), domainerrors.ErrInvalidTransition)
		}
		booking.Status = to
		return u.bookingRepo.UpdateStatus(txCtx, bookingID, to)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CompleteBooking finishes a booking and releases its funds. The booking
// must be confirmed or in progress and must carry at least one completed
// payment; remaining pending payments are force-completed along with it,
// failed ones stay failed. Completing an already completed booking fails
// rather than silently double-counting revenue.
func (u *BookingUsecase) CompleteBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
	var booking *entities.Booking
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)
		var err error
		booking, err = u.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.BusinessID != businessID {
			return domainerrors.NotFound("booking not found")
		}
		if booking.Status == entities.BookingStatusCompleted {
			return domainerrors.Conflict("booking is already completed", domainerrors.ErrAlreadyCompleted)
		}
		if booking.Status != entities.BookingStatusConfirmed && booking.Status != entities.BookingStatusInProgress {
			return domainerrors.Conflict("booking cannot be completed from "+string(booking.Status), domainerrors.ErrBookingNotCompletable)
		}
		hasCompleted := false
		for _, p := range booking.Payments {
			if p.Status == entities.PaymentStatusCompleted {
				hasCompleted = true
				break
			}
		}
		if !hasCompleted {
			return domainerrors.Unprocessable("booking has no completed payment", domainerrors.ErrCannotCompleteUnpaidBooking)
		}

		completedAt := u.now().UTC()
		fundsAvailableAt := completedAt.Add(u.cfg.FundsHoldDuration)
		if err := u.bookingRepo.MarkCompleted(txCtx, bookingID, completedAt, fundsAvailableAt); err != nil {
			return err
		}
		forced, err := u.paymentRepo.CompleteAllForBooking(txCtx, bookingID)
		if err != nil {
			return err
		}
		if forced > 0 {
			logger.Warn(txCtx, "payments force-completed with booking",
				zap.String("booking_id", bookingID.String()),
				zap.Int64("count", forced))
		}

		booking.Status = entities.BookingStatusCompleted
		booking.CompletedAt = null.TimeFrom(completedAt)
		booking.FundsAvailableAt = null.TimeFrom(fundsAvailableAt)
		for _, p := range booking.Payments {
			if p.Status == entities.PaymentStatusPending {
				p.Status = entities.PaymentStatusCompleted
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "booking completed",
		zap.String("booking_id", bookingID.String()),
		zap.String("amount", booking.TotalAmount.String()))
	return booking, nil
}
