package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// StaffRole distinguishes the business owner from regular staff. The
// allocation engine never matches account ids to find the owner; the role
// tag is authoritative.
type StaffRole string

const (
	StaffRoleOwner StaffRole = "owner"
	StaffRoleStaff StaffRole = "staff"
)

// PayoutPolicyKind represents how a staff member's earnings are computed
type PayoutPolicyKind string

const (
	// PolicyPercentOfOwnBookings pays a percentage of the net of the staff
	// member's own completed bookings.
	PolicyPercentOfOwnBookings PayoutPolicyKind = "percent_of_own_bookings"
	// PolicyPercentOfTenantTotal pays a percentage of the business's total net.
	PolicyPercentOfTenantTotal PayoutPolicyKind = "percent_of_tenant_total"
	// PolicyFixedPerWeek pays a flat recurring amount.
	PolicyFixedPerWeek PayoutPolicyKind = "fixed_per_week"
	// PolicyFixedPerDay pays a flat amount per distinct day worked.
	PolicyFixedPerDay PayoutPolicyKind = "fixed_per_day"
)

// PayoutPolicy pairs a policy kind with its value (a percentage for the
// percent kinds, a currency amount for the fixed kinds).
type PayoutPolicy struct {
	Kind  PayoutPolicyKind `json:"kind"`
	Value decimal.Decimal  `json:"value"`
}

// StaffMember represents a bookable member of a business
type StaffMember struct {
	ID           uuid.UUID     `json:"id"`
	BusinessID   uuid.UUID     `json:"businessId"`
	UserID       *uuid.UUID    `json:"userId,omitempty"`
	DisplayName  string        `json:"displayName"`
	Role         StaffRole     `json:"role"`
	PayoutPolicy *PayoutPolicy `json:"payoutPolicy,omitempty"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	DeletedAt    null.Time     `json:"-"`
}

// IsOwner reports whether the staff member is the business owner
func (s *StaffMember) IsOwner() bool {
	return s.Role == StaffRoleOwner
}

// AddStaffInput represents input for adding a staff member
type AddStaffInput struct {
	DisplayName string `json:"displayName" binding:"required,min=1,max=255"`
	Role        string `json:"role,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// SetPayoutPolicyInput represents input for configuring a staff payout policy
type SetPayoutPolicyInput struct {
	Kind  PayoutPolicyKind `json:"kind" binding:"required"`
	Value string           `json:"value" binding:"required"`
}
