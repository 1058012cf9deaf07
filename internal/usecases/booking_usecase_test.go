package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/usecases"
)

func newBookingUsecase(bookingRepo *MockBookingRepository, paymentRepo *MockPaymentRepository, serviceRepo *MockServiceRepository, staffRepo *MockStaffRepository) *usecases.BookingUsecase {
	return usecases.NewBookingUsecase(bookingRepo, paymentRepo, serviceRepo, staffRepo, fakeUnitOfWork{}, testPaymentsConfig())
}

func TestCreateBooking_Success(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	paymentRepo := new(MockPaymentRepository)
	serviceRepo := new(MockServiceRepository)
	staffRepo := new(MockStaffRepository)
	uc := newBookingUsecase(bookingRepo, paymentRepo, serviceRepo, staffRepo)

	businessID := uuid.New()
	serviceID := uuid.New()
	staffID := uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	serviceRepo.On("GetByID", mock.Anything, serviceID).Return(&entities.Service{
		ID: serviceID, BusinessID: businessID, Price: decimal.RequireFromString("45.00"),
	}, nil)
	staffRepo.On("GetByID", mock.Anything, staffID).Return(&entities.StaffMember{
		ID: staffID, BusinessID: businessID, Role: entities.StaffRoleStaff, Active: true,
	}, nil)
	bookingRepo.On("HasConflict", mock.Anything, staffID, start, end).Return(false, nil)
	bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Booking")).Return(nil)

	booking, err := uc.CreateBooking(context.Background(), businessID, &entities.CreateBookingInput{
		ServiceID:    serviceID.String(),
		StaffID:      staffID.String(),
		CustomerName: "Ada",
		StartTime:    start,
		EndTime:      end,
	})
	require.NoError(t, err)
	require.Equal(t, entities.BookingStatusPending, booking.Status)
	require.True(t, booking.TotalAmount.Equal(decimal.RequireFromString("45.00")))
	bookingRepo.AssertExpectations(t)
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	paymentRepo := new(MockPaymentRepository)
	serviceRepo := new(MockServiceRepository)
	staffRepo := new(MockStaffRepository)
	uc := newBookingUsecase(bookingRepo, paymentRepo, serviceRepo, staffRepo)

	businessID := uuid.New()
	serviceID := uuid.New()
	staffID := uuid.New()
	start := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	serviceRepo.On("GetByID", mock.Anything, serviceID).Return(&entities.Service{
		ID: serviceID, BusinessID: businessID, Price: decimal.RequireFromString("45.00"),
	}, nil)
	staffRepo.On("GetByID", mock.Anything, staffID).Return(&entities.StaffMember{
		ID: staffID, BusinessID: businessID, Role: entities.StaffRoleStaff, Active: true,
	}, nil)
	bookingRepo.On("HasConflict", mock.Anything, staffID, start, end).Return(true, nil)

	_, err := uc.CreateBooking(context.Background(), businessID, &entities.CreateBookingInput{
		ServiceID:    serviceID.String(),
		StaffID:      staffID.String(),
		CustomerName: "Ada",
		StartTime:    start,
		EndTime:      end,
	})
	require.ErrorIs(t, err, domainerrors.ErrSlotUnavailable)
	bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_InvalidTimeRange(t *testing.T) {
	uc := newBookingUsecase(new(MockBookingRepository), new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err := uc.CreateBooking(context.Background(), uuid.New(), &entities.CreateBookingInput{
		ServiceID:    uuid.New().String(),
		StaffID:      uuid.New().String(),
		CustomerName: "Ada",
		StartTime:    start,
		EndTime:      start,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidTimeRange)
}

func TestCompleteBooking_Success(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	paymentRepo := new(MockPaymentRepository)
	uc := newBookingUsecase(bookingRepo, paymentRepo, new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusInProgress,
		Payments: []*entities.Payment{
			{ID: uuid.New(), BookingID: bookingID, Status: entities.PaymentStatusCompleted},
		},
	}, nil)
	bookingRepo.On("MarkCompleted", mock.Anything, bookingID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil)
	paymentRepo.On("CompleteAllForBooking", mock.Anything, bookingID).Return(int64(0), nil)

	booking, err := uc.CompleteBooking(context.Background(), businessID, bookingID)
	require.NoError(t, err)
	require.Equal(t, entities.BookingStatusCompleted, booking.Status)
	require.True(t, booking.CompletedAt.Valid)
	require.True(t, booking.FundsAvailableAt.Valid)
	bookingRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestCompleteBooking_Unpaid(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusConfirmed,
	}, nil)

	_, err := uc.CompleteBooking(context.Background(), businessID, bookingID)
	require.ErrorIs(t, err, domainerrors.ErrCannotCompleteUnpaidBooking)
	bookingRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteBooking_AlreadyCompleted(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusCompleted,
		Payments: []*entities.Payment{
			{ID: uuid.New(), BookingID: bookingID, Status: entities.PaymentStatusCompleted},
		},
	}, nil)

	_, err := uc.CompleteBooking(context.Background(), businessID, bookingID)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyCompleted)
}

func TestCompleteBooking_FromPendingRejected(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusPending,
	}, nil)

	_, err := uc.CompleteBooking(context.Background(), businessID, bookingID)
	require.ErrorIs(t, err, domainerrors.ErrBookingNotCompletable)
}

func TestCompleteBooking_FailedOnlyPaymentRejected(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	paymentRepo := new(MockPaymentRepository)
	uc := newBookingUsecase(bookingRepo, paymentRepo, new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusConfirmed,
		Payments: []*entities.Payment{
			{ID: uuid.New(), BookingID: bookingID, Status: entities.PaymentStatusFailed},
		},
	}, nil)

	// A declined charge is not money; the booking stays unpaid.
	_, err := uc.CompleteBooking(context.Background(), businessID, bookingID)
	require.ErrorIs(t, err, domainerrors.ErrCannotCompleteUnpaidBooking)
	bookingRepo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	paymentRepo.AssertNotCalled(t, "CompleteAllForBooking", mock.Anything, mock.Anything)
}

func TestCancelBooking_TerminalStateRejected(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusNoShow,
	}, nil)

	_, err := uc.CancelBooking(context.Background(), businessID, bookingID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestConfirmBooking_Success(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	businessID := uuid.New()
	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: businessID,
		Status:     entities.BookingStatusPending,
	}, nil)
	bookingRepo.On("UpdateStatus", mock.Anything, bookingID, entities.BookingStatusConfirmed).Return(nil)

	booking, err := uc.ConfirmBooking(context.Background(), businessID, bookingID)
	require.NoError(t, err)
	require.Equal(t, entities.BookingStatusConfirmed, booking.Status)
}

func TestGetBooking_WrongBusiness(t *testing.T) {
	bookingRepo := new(MockBookingRepository)
	uc := newBookingUsecase(bookingRepo, new(MockPaymentRepository), new(MockServiceRepository), new(MockStaffRepository))

	bookingID := uuid.New()
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&entities.Booking{
		ID:         bookingID,
		BusinessID: uuid.New(),
		Status:     entities.BookingStatusPending,
	}, nil)

	_, err := uc.GetBooking(context.Background(), uuid.New(), bookingID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
