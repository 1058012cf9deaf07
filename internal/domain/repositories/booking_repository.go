package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	// GetByID loads a booking together with its payments.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error)
	// ListByStatuses returns every booking of the business in one of the
	// given states, payments preloaded.
	ListByStatuses(ctx context.Context, businessID uuid.UUID, statuses []entities.BookingStatus) ([]*entities.Booking, error)
	// ListSettleable returns confirmed or in-progress bookings across all
	// businesses whose end time elapsed before the cutoff.
	ListSettleable(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Booking, error)
	// HasConflict reports whether [start, end) overlaps a non-cancelled
	// booking of the staff member. Callers must wrap the check and the
	// subsequent insert in one UnitOfWork with locking.
	HasConflict(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt, fundsAvailableAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error
	// ClearStaff detaches a removed staff member from their bookings.
	ClearStaff(ctx context.Context, staffID uuid.UUID) error
}

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error)
	// CompleteAllForBooking force-transitions every pending payment of the
	// booking to completed. Failed payments stay failed. Returns the number
	// of rows changed.
	CompleteAllForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
}
