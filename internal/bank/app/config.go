package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for session tokens (>= 32 bytes)
	Issuer    string // Optional: issuer claim for tokens (default: securepay)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./bank.db)
	SessionTTL   time.Duration // Optional: session token lifetime (default: 1h)

	StartingBalanceCents int64 // Optional: balance granted on account creation (default: 500000 = 5000.00)
	MinWithdrawalCents   int64 // Optional: withdrawal floor (default: 1000 = 10.00)
	DefaultCurrency      string

	StrictLimit       int           // Optional: attempts per window on credential endpoints (default: 5)
	LenientLimit      int           // Optional: requests per window on authenticated mutations (default: 10)
	GlobalLimit       int           // Optional: requests per window on reads/public routes (default: 100)
	RateLimitWindow   time.Duration // Optional: window shared by all profiles (default: 15m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("BANK_JWT_SECRET"),
		Issuer:    getEnvOrDefault("BANK_ISSUER", "securepay"),

		DatabaseFile: getEnvOrDefault("BANK_DATABASE_FILE", "bank.db"),
		SessionTTL:   getEnvDurationOrDefault("BANK_SESSION_TTL", time.Hour),

		StartingBalanceCents: getEnvInt64OrDefault("BANK_STARTING_BALANCE_CENTS", 500000),
		MinWithdrawalCents:   getEnvInt64OrDefault("BANK_MIN_WITHDRAWAL_CENTS", 1000),
		DefaultCurrency:      getEnvOrDefault("BANK_DEFAULT_CURRENCY", "ZAR"),

		StrictLimit:     getEnvIntOrDefault("BANK_RATE_STRICT", 5),
		LenientLimit:    getEnvIntOrDefault("BANK_RATE_LENIENT", 10),
		GlobalLimit:     getEnvIntOrDefault("BANK_RATE_GLOBAL", 100),
		RateLimitWindow: getEnvDurationOrDefault("BANK_RATE_WINDOW", 15*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
