package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"trimly.backend/internal/domain/entities"
)

// fakeUnitOfWork runs the callback directly; the transactional behavior
// itself is covered by the repository tests.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (fakeUnitOfWork) WithLock(ctx context.Context) context.Context {
	return ctx
}

// Mock BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error) {
	args := m.Called(ctx, businessID, limit, offset)
	return args.Get(0).([]*entities.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListByStatuses(ctx context.Context, businessID uuid.UUID, statuses []entities.BookingStatus) ([]*entities.Booking, error) {
	args := m.Called(ctx, businessID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListSettleable(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Booking, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasConflict(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, staffID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt, fundsAvailableAt time.Time) error {
	args := m.Called(ctx, id, completedAt, fundsAvailableAt)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ClearStaff(ctx context.Context, staffID uuid.UUID) error {
	args := m.Called(ctx, staffID)
	return args.Error(0)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CompleteAllForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *entities.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.StaffMember, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) SetPayoutPolicy(ctx context.Context, id uuid.UUID, policy *entities.PayoutPolicy) error {
	args := m.Called(ctx, id, policy)
	return args.Error(0)
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *entities.StaffMember) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Service, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *entities.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

// Mock BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) List(ctx context.Context, limit, offset int) ([]*entities.Business, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entities.Business), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *entities.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock ResellerRepository
type MockResellerRepository struct {
	mock.Mock
}

func (m *MockResellerRepository) Create(ctx context.Context, reseller *entities.Reseller) error {
	args := m.Called(ctx, reseller)
	return args.Error(0)
}

func (m *MockResellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reseller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reseller), args.Error(1)
}

func (m *MockResellerRepository) List(ctx context.Context) ([]*entities.Reseller, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reseller), args.Error(1)
}

func (m *MockResellerRepository) Update(ctx context.Context, reseller *entities.Reseller) error {
	args := m.Called(ctx, reseller)
	return args.Error(0)
}

// Mock ResellerAPIKeyRepository
type MockResellerAPIKeyRepository struct {
	mock.Mock
}

func (m *MockResellerAPIKeyRepository) Create(ctx context.Context, key *entities.ResellerAPIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockResellerAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*entities.ResellerAPIKey, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResellerAPIKey), args.Error(1)
}

func (m *MockResellerAPIKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResellerAPIKeyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payout), args.Error(1)
}

func (m *MockPayoutRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Payout, int64, error) {
	args := m.Called(ctx, businessID, limit, offset)
	return args.Get(0).([]*entities.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) Confirm(ctx context.Context, id uuid.UUID, status entities.PayoutStatus, transferRef string) error {
	args := m.Called(ctx, id, status, transferRef)
	return args.Error(0)
}

func (m *MockPayoutRepository) CreateLineItems(ctx context.Context, items []*entities.PayoutLineItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockPayoutRepository) ListLineItems(ctx context.Context, payoutID uuid.UUID) ([]*entities.PayoutLineItem, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PayoutLineItem), args.Error(1)
}
