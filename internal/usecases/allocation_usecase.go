package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"trimly.backend/internal/config"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/domain/repositories"
)

const earningsWindow = 7 * 24 * time.Hour

// AllocationUsecase computes per-staff earnings from completed bookings.
// It is a pure read-aggregate; the report is a point-in-time snapshot and
// holds no locks.
type AllocationUsecase struct {
	bookingRepo repositories.BookingRepository
	staffRepo   repositories.StaffRepository
	feeResolver *FeeResolver
	cfg         config.PaymentsConfig
}

// NewAllocationUsecase creates a new allocation usecase
func NewAllocationUsecase(
	bookingRepo repositories.BookingRepository,
	staffRepo repositories.StaffRepository,
	feeResolver *FeeResolver,
	cfg config.PaymentsConfig,
) *AllocationUsecase {
	return &AllocationUsecase{
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		feeResolver: feeResolver,
		cfg:         cfg,
	}
}

// bucket accumulates one staff member's completed-booking revenue.
// Amounts stay unrounded until the report is assembled.
type bucket struct {
	netTotal     decimal.Decimal
	netWindow    decimal.Decimal
	bookingCount int
	daysAllTime  map[string]struct{}
	daysInWindow map[string]struct{}
}

func newBucket() *bucket {
	return &bucket{
		daysAllTime:  make(map[string]struct{}),
		daysInWindow: make(map[string]struct{}),
	}
}

// Allocate builds the earnings report for a business as of the given
// instant. Every active staff member appears in the report even with zero
// bookings, so the roster shown is the roster paid. Bookings without a
// staff member, and bookings worked by the owner, land in the owner
// bucket; the owner always earns the full net of that bucket regardless
// of any stored policy.
func (u *AllocationUsecase) Allocate(ctx context.Context, businessID uuid.UUID, asOf time.Time) (*entities.AllocationReport, error) {
	rate, err := u.feeResolver.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	staff, err := u.staffRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	bookings, err := u.bookingRepo.ListByStatuses(ctx, businessID, []entities.BookingStatus{entities.BookingStatusCompleted})
	if err != nil {
		return nil, err
	}

	ownerIDs := make(map[uuid.UUID]bool)
	var owner *entities.StaffMember
	for _, s := range staff {
		if s.IsOwner() {
			ownerIDs[s.ID] = true
			if owner == nil {
				owner = s
			}
		}
	}

	windowStart := asOf.Add(-earningsWindow)
	ownerBucket := newBucket()
	buckets := make(map[uuid.UUID]*bucket)

	var totalGross, totalNet, platformFees, windowNet decimal.Decimal
	for _, b := range bookings {
		fee := b.TotalAmount.Mul(rate)
		net := b.TotalAmount.Sub(fee)
		totalGross = totalGross.Add(b.TotalAmount)
		platformFees = platformFees.Add(fee)
		totalNet = totalNet.Add(net)

		inWindow := !b.CreatedAt.Before(windowStart) && !b.CreatedAt.After(asOf)
		if inWindow {
			windowNet = windowNet.Add(net)
		}

		bk := ownerBucket
		if b.StaffID != nil && !ownerIDs[*b.StaffID] {
			if buckets[*b.StaffID] == nil {
				buckets[*b.StaffID] = newBucket()
			}
			bk = buckets[*b.StaffID]
		}

		day := b.CreatedAt.UTC().Format("2006-01-02")
		bk.netTotal = bk.netTotal.Add(net)
		bk.bookingCount++
		bk.daysAllTime[day] = struct{}{}
		if inWindow {
			bk.netWindow = bk.netWindow.Add(net)
			bk.daysInWindow[day] = struct{}{}
		}
	}

	defaultPolicy := entities.PayoutPolicy{
		Kind:  entities.PolicyPercentOfOwnBookings,
		Value: decimal.NewFromFloat(u.cfg.DefaultStaffCommissionPercent),
	}

	ownerAlloc := &entities.StaffAllocation{
		DisplayName:    "Owner",
		IsOwner:        true,
		PolicyKind:     entities.PolicyPercentOfOwnBookings,
		PolicyValue:    oneHundred,
		BookingCount:   ownerBucket.bookingCount,
		TotalEarnings:  ownerBucket.netTotal.Round(2),
		WindowEarnings: ownerBucket.netWindow.Round(2),
	}
	if owner != nil {
		ownerAlloc.StaffID = owner.ID
		ownerAlloc.DisplayName = owner.DisplayName
	}

	var staffAllocs []*entities.StaffAllocation
	var staffTotal, staffWindowTotal decimal.Decimal
	for _, s := range staff {
		if s.IsOwner() {
			continue
		}
		bk := buckets[s.ID]
		if bk == nil {
			bk = newBucket()
		}
		policy := defaultPolicy
		if s.PayoutPolicy != nil {
			policy = *s.PayoutPolicy
		}
		total, window := evaluatePolicy(policy, bk, totalNet, windowNet)
		staffTotal = staffTotal.Add(total)
		staffWindowTotal = staffWindowTotal.Add(window)
		staffAllocs = append(staffAllocs, &entities.StaffAllocation{
			StaffID:        s.ID,
			DisplayName:    s.DisplayName,
			IsOwner:        false,
			PolicyKind:     policy.Kind,
			PolicyValue:    policy.Value,
			BookingCount:   bk.bookingCount,
			TotalEarnings:  total.Round(2),
			WindowEarnings: window.Round(2),
		})
	}

	sort.SliceStable(staffAllocs, func(i, j int) bool {
		return staffAllocs[i].TotalEarnings.GreaterThan(staffAllocs[j].TotalEarnings)
	})

	allocations := make([]*entities.StaffAllocation, 0, len(staffAllocs)+1)
	allocations = append(allocations, ownerAlloc)
	allocations = append(allocations, staffAllocs...)

	return &entities.AllocationReport{
		Allocations: allocations,
		Totals: entities.AllocationTotals{
			TotalGross:       totalGross.Round(2),
			TotalNet:         totalNet.Round(2),
			PlatformFees:     platformFees.Round(2),
			StaffTotal:       staffTotal.Round(2),
			StaffWindowTotal: staffWindowTotal.Round(2),
			OwnerTotal:       ownerBucket.netTotal.Round(2),
			OwnerWindowTotal: ownerBucket.netWindow.Round(2),
		},
		AsOf: asOf,
	}, nil
}

// evaluatePolicy computes a non-owner staff member's all-time and windowed
// earnings. Fixed policies are a contractual promise independent of
// instantaneous revenue, so the sum over staff may exceed the tenant's net.
func evaluatePolicy(policy entities.PayoutPolicy, bk *bucket, totalNet, windowNet decimal.Decimal) (total, window decimal.Decimal) {
	switch policy.Kind {
	case entities.PolicyPercentOfTenantTotal:
		p := policy.Value.Div(oneHundred)
		return totalNet.Mul(p), windowNet.Mul(p)
	case entities.PolicyFixedPerWeek:
		return policy.Value, policy.Value
	case entities.PolicyFixedPerDay:
		return policy.Value.Mul(decimal.NewFromInt(int64(len(bk.daysAllTime)))),
			policy.Value.Mul(decimal.NewFromInt(int64(len(bk.daysInWindow))))
	default:
		p := policy.Value.Div(oneHundred)
		return bk.netTotal.Mul(p), bk.netWindow.Mul(p)
	}
}
