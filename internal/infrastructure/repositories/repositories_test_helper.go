package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createBusinessTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE businesses (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		currency TEXT NOT NULL DEFAULT 'USD',
		fee_rate_percent REAL,
		is_white_label BOOLEAN NOT NULL DEFAULT 0,
		reseller_id TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createResellerTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE resellers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		platform_fee_percent REAL,
		brand_domain TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE reseller_api_keys (
		id TEXT PRIMARY KEY,
		reseller_id TEXT NOT NULL,
		key_prefix TEXT NOT NULL UNIQUE,
		key_hash TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		last_used_at DATETIME,
		created_at DATETIME
	);`)
}

func createStaffTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE staff_members (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		user_id TEXT,
		display_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'staff',
		payout_policy_kind TEXT,
		payout_policy_value TEXT,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createServiceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE services (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		name TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		price TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBookingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		staff_id TEXT,
		customer_name TEXT NOT NULL,
		customer_email TEXT,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		total_amount TEXT NOT NULL,
		completed_at DATETIME,
		funds_available_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		platform_fee TEXT NOT NULL,
		business_amount TEXT NOT NULL,
		fee_rate_snapshot TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		processor_charge_ref TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPayoutTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payouts (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		description TEXT,
		external_transfer_ref TEXT,
		period_start DATETIME NOT NULL,
		period_end DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payout_line_items (
		id TEXT PRIMARY KEY,
		payout_id TEXT NOT NULL,
		booking_id TEXT NOT NULL,
		staff_id TEXT,
		amount TEXT NOT NULL
	);`)
}
