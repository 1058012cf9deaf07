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
	"trimly.backend/internal/usecases"
)

type allocationFixture struct {
	uc         *usecases.AllocationUsecase
	businessID uuid.UUID
	staffRepo  *MockStaffRepository
	booking    *MockBookingRepository
}

func newAllocationFixture(t *testing.T) *allocationFixture {
	t.Helper()
	businessRepo := new(MockBusinessRepository)
	resellerRepo := new(MockResellerRepository)
	staffRepo := new(MockStaffRepository)
	bookingRepo := new(MockBookingRepository)

	businessID := uuid.New()
	// No configured rate, so the default 5% applies.
	businessRepo.On("GetByID", mock.Anything, businessID).Return(&entities.Business{
		ID:     businessID,
		Status: entities.BusinessStatusActive,
	}, nil)

	resolver := usecases.NewFeeResolver(businessRepo, resellerRepo, testPaymentsConfig())
	uc := usecases.NewAllocationUsecase(bookingRepo, staffRepo, resolver, testPaymentsConfig())
	return &allocationFixture{uc: uc, businessID: businessID, staffRepo: staffRepo, booking: bookingRepo}
}

func completedBooking(businessID uuid.UUID, staffID *uuid.UUID, amount string, createdAt time.Time) *entities.Booking {
	return &entities.Booking{
		ID:          uuid.New(),
		BusinessID:  businessID,
		StaffID:     staffID,
		Status:      entities.BookingStatusCompleted,
		TotalAmount: decimal.RequireFromString(amount),
		CreatedAt:   createdAt,
	}
}

func TestAllocate_SingleStaffCommission(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	ownerID := uuid.New()
	staffID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: ownerID, BusinessID: f.businessID, DisplayName: "Olivia", Role: entities.StaffRoleOwner, Active: true},
		{ID: staffID, BusinessID: f.businessID, DisplayName: "Xavier", Role: entities.StaffRoleStaff, Active: true,
			PayoutPolicy: &entities.PayoutPolicy{Kind: entities.PolicyPercentOfOwnBookings, Value: decimal.NewFromInt(60)}},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		completedBooking(f.businessID, &staffID, "200.00", asOf.Add(-2*time.Hour)),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	require.Equal(t, "200", report.Totals.TotalGross.String())
	require.Equal(t, "10", report.Totals.PlatformFees.String())
	require.Equal(t, "190", report.Totals.TotalNet.String())
	require.Equal(t, "114", report.Totals.StaffTotal.String())
	require.Equal(t, "0", report.Totals.OwnerTotal.String())

	require.Len(t, report.Allocations, 2)
	owner := report.Allocations[0]
	require.True(t, owner.IsOwner)
	require.Equal(t, "Olivia", owner.DisplayName)
	require.Equal(t, "0", owner.TotalEarnings.String())

	staff := report.Allocations[1]
	require.Equal(t, "Xavier", staff.DisplayName)
	require.Equal(t, "114", staff.TotalEarnings.String())
	require.Equal(t, "114", staff.WindowEarnings.String())
	require.Equal(t, 1, staff.BookingCount)
}

func TestAllocate_FixedPerDayCountsDistinctDays(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	staffID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: staffID, BusinessID: f.businessID, DisplayName: "Dana", Role: entities.StaffRoleStaff, Active: true,
			PayoutPolicy: &entities.PayoutPolicy{Kind: entities.PolicyFixedPerDay, Value: decimal.NewFromInt(10)}},
	}, nil)
	day1 := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	// Two weeks back, outside the trailing window.
	day3 := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		completedBooking(f.businessID, &staffID, "40.00", day1),
		completedBooking(f.businessID, &staffID, "40.00", day1.Add(2*time.Hour)),
		completedBooking(f.businessID, &staffID, "40.00", day2),
		completedBooking(f.businessID, &staffID, "40.00", day3),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	var dana *entities.StaffAllocation
	for _, a := range report.Allocations {
		if a.DisplayName == "Dana" {
			dana = a
		}
	}
	require.NotNil(t, dana)
	// 3 distinct days all-time, 2 in the window: per-day booking count is
	// irrelevant.
	require.Equal(t, "30", dana.TotalEarnings.String())
	require.Equal(t, "20", dana.WindowEarnings.String())
	require.Equal(t, 4, dana.BookingCount)
}

func TestAllocate_TenantTotalPoliciesCanExceedNet(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	aID := uuid.New()
	bID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: aID, BusinessID: f.businessID, DisplayName: "A", Role: entities.StaffRoleStaff, Active: true,
			PayoutPolicy: &entities.PayoutPolicy{Kind: entities.PolicyPercentOfTenantTotal, Value: decimal.NewFromInt(80)}},
		{ID: bID, BusinessID: f.businessID, DisplayName: "B", Role: entities.StaffRoleStaff, Active: true,
			PayoutPolicy: &entities.PayoutPolicy{Kind: entities.PolicyPercentOfTenantTotal, Value: decimal.NewFromInt(80)}},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		completedBooking(f.businessID, &aID, "100.00", asOf.Add(-time.Hour)),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	// Commission policies are a contractual promise, not a share of a pot:
	// two 80%-of-tenant-total staff are owed 152 against a net of 95. The
	// engine reports it without capping.
	require.Equal(t, "95", report.Totals.TotalNet.String())
	require.Equal(t, "152", report.Totals.StaffTotal.String())
	require.True(t, report.Totals.StaffTotal.GreaterThan(report.Totals.TotalNet))
}

func TestAllocate_ZeroBookingStaffStillListed(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	idleID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: idleID, BusinessID: f.businessID, DisplayName: "Idle", Role: entities.StaffRoleStaff, Active: true},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	require.Len(t, report.Allocations, 2)
	require.Equal(t, "Idle", report.Allocations[1].DisplayName)
	require.Equal(t, "0", report.Allocations[1].TotalEarnings.String())
	require.Equal(t, 0, report.Allocations[1].BookingCount)
	// Staff with no explicit policy report under the default commission.
	require.Equal(t, entities.PolicyPercentOfOwnBookings, report.Allocations[1].PolicyKind)
}

func TestAllocate_OwnerBucketCollectsUnassignedAndOwnerBookings(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	ownerID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: ownerID, BusinessID: f.businessID, DisplayName: "Olivia", Role: entities.StaffRoleOwner, Active: true},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		// Staff removed since completion: staff slot is empty.
		completedBooking(f.businessID, nil, "100.00", asOf.Add(-time.Hour)),
		// The owner worked this one personally.
		completedBooking(f.businessID, &ownerID, "100.00", asOf.Add(-2*time.Hour)),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	owner := report.Allocations[0]
	require.True(t, owner.IsOwner)
	// Owner keeps the full net of the owner bucket, never a commission cut.
	require.Equal(t, "190", owner.TotalEarnings.String())
	require.Equal(t, 2, owner.BookingCount)
	require.Equal(t, "190", report.Totals.OwnerTotal.String())
}

func TestAllocate_SyntheticOwnerRowWhenNoOwnerRecord(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		completedBooking(f.businessID, nil, "50.00", asOf.Add(-time.Hour)),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	require.Len(t, report.Allocations, 1)
	owner := report.Allocations[0]
	require.True(t, owner.IsOwner)
	require.Equal(t, uuid.Nil, owner.StaffID)
	require.Equal(t, "Owner", owner.DisplayName)
	require.Equal(t, "47.5", owner.TotalEarnings.String())
}

func TestAllocate_OrderedOwnerFirstThenDescendingEarnings(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	ownerID := uuid.New()
	lowID := uuid.New()
	highID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: ownerID, BusinessID: f.businessID, DisplayName: "Olivia", Role: entities.StaffRoleOwner, Active: true},
		{ID: lowID, BusinessID: f.businessID, DisplayName: "Low", Role: entities.StaffRoleStaff, Active: true},
		{ID: highID, BusinessID: f.businessID, DisplayName: "High", Role: entities.StaffRoleStaff, Active: true},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{
		completedBooking(f.businessID, &lowID, "50.00", asOf.Add(-time.Hour)),
		completedBooking(f.businessID, &highID, "500.00", asOf.Add(-time.Hour)),
	}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	require.Len(t, report.Allocations, 3)
	require.True(t, report.Allocations[0].IsOwner)
	require.Equal(t, "High", report.Allocations[1].DisplayName)
	require.Equal(t, "Low", report.Allocations[2].DisplayName)
}

func TestAllocate_FixedPerWeekIsFlat(t *testing.T) {
	f := newAllocationFixture(t)
	asOf := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	staffID := uuid.New()
	f.staffRepo.On("ListByBusiness", mock.Anything, f.businessID).Return([]*entities.StaffMember{
		{ID: staffID, BusinessID: f.businessID, DisplayName: "Flat", Role: entities.StaffRoleStaff, Active: true,
			PayoutPolicy: &entities.PayoutPolicy{Kind: entities.PolicyFixedPerWeek, Value: decimal.RequireFromString("250.00")}},
	}, nil)
	f.booking.On("ListByStatuses", mock.Anything, f.businessID, mock.Anything).Return([]*entities.Booking{}, nil)

	report, err := f.uc.Allocate(context.Background(), f.businessID, asOf)
	require.NoError(t, err)

	flat := report.Allocations[1]
	require.Equal(t, "250", flat.TotalEarnings.String())
	require.Equal(t, "250", flat.WindowEarnings.String())
}
