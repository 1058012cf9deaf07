package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Payments PaymentsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds verification settings for tokens issued by the hosted
// auth provider.
type JWTConfig struct {
	Secret string
}

// PaymentsConfig holds the revenue engine settings
type PaymentsConfig struct {
	// DefaultFeePercent applies to standard businesses with no configured rate.
	DefaultFeePercent float64
	// DefaultWhiteLabelFeePercent applies to white-label businesses whose
	// reseller has no configured rate.
	DefaultWhiteLabelFeePercent float64
	// DefaultStaffCommissionPercent applies to staff with no payout policy.
	DefaultStaffCommissionPercent float64
	// FundsHoldDuration delays fundsAvailableAt past completion. Zero means
	// funds release immediately on completion.
	FundsHoldDuration time.Duration
	// PayoutLookback is the reporting window attached to each payout.
	PayoutLookback time.Duration
	// SettlementGrace is how long after a booking's end time the
	// auto-settlement job waits before completing it.
	SettlementGrace time.Duration
	// WebhookSecret signs the payment processor's checkout notifications.
	WebhookSecret string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "trimly"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
		},
		Payments: PaymentsConfig{
			DefaultFeePercent:             getEnvAsFloat("PLATFORM_FEE_PERCENT", 5.0),
			DefaultWhiteLabelFeePercent:   getEnvAsFloat("WHITELABEL_FEE_PERCENT", 1.0),
			DefaultStaffCommissionPercent: getEnvAsFloat("STAFF_COMMISSION_PERCENT", 60.0),
			FundsHoldDuration:             getEnvAsDuration("FUNDS_HOLD_DURATION", 0),
			PayoutLookback:                getEnvAsDuration("PAYOUT_LOOKBACK", 7*24*time.Hour),
			SettlementGrace:               getEnvAsDuration("SETTLEMENT_GRACE", time.Hour),
			WebhookSecret:                 getEnv("PROCESSOR_WEBHOOK_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
