package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "development", cfg.Server.Env)
	require.Equal(t, "trimly", cfg.Database.DBName)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, 5.0, cfg.Payments.DefaultFeePercent)
	require.Equal(t, 1.0, cfg.Payments.DefaultWhiteLabelFeePercent)
	require.Equal(t, 60.0, cfg.Payments.DefaultStaffCommissionPercent)
	require.Equal(t, time.Duration(0), cfg.Payments.FundsHoldDuration)
	require.Equal(t, 7*24*time.Hour, cfg.Payments.PayoutLookback)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("PLATFORM_FEE_PERCENT", "7.5")
	t.Setenv("FUNDS_HOLD_DURATION", "24h")

	cfg := Load()
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 5433, cfg.Database.Port)
	require.Equal(t, 7.5, cfg.Payments.DefaultFeePercent)
	require.Equal(t, 24*time.Hour, cfg.Payments.FundsHoldDuration)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("PLATFORM_FEE_PERCENT", "not-a-float")
	t.Setenv("FUNDS_HOLD_DURATION", "not-a-duration")

	cfg := Load()
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, 5.0, cfg.Payments.DefaultFeePercent)
	require.Equal(t, time.Duration(0), cfg.Payments.FundsHoldDuration)
}

func TestDatabaseURL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "trimly", SSLMode: "disable"}
	require.Equal(t, "postgres://u:p@db:5432/trimly?sslmode=disable", c.URL())
}
