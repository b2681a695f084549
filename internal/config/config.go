package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Redis (regrading quote cache)
	RedisAddr string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Financial settings
	// DaysInYear fixes the day-count denominator (360 or 365).
	// 0 means "use the real number of days of the loan's start year".
	DaysInYear                int
	InterestRateDecimalPlaces int
	LateFeeDailyRate          float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                      getEnv("PORT", "8080"),
		Environment:               getEnv("ENVIRONMENT", "development"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		RedisAddr:                 getEnv("REDIS_ADDR", ""),
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		JWTExpirationHours:        getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		WorkerCount:               getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:            getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:                 getEnv("SENTRY_DSN", ""),
		DaysInYear:                getEnvAsInt("DAYS_IN_YEAR", 360),
		InterestRateDecimalPlaces: getEnvAsInt("INTEREST_RATE_DECIMAL_PLACES", 2),
		LateFeeDailyRate:          getEnvAsFloat("LATE_FEE_DAILY_RATE", 0.0),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.DaysInYear != 0 && cfg.DaysInYear != 360 && cfg.DaysInYear != 365 {
		return nil, fmt.Errorf("DAYS_IN_YEAR must be 0, 360 or 365")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as float
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
