package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the marketplace.
type Config struct {
	Port     int
	LogLevel string

	// RoundLength is how long a round stays open once admission triggers.
	RoundLength time.Duration
	// SellerCountCutoff opens a round once this many distinct sellers
	// have unassigned sell orders.
	SellerCountCutoff int
	// TotalSharesCutoff opens a round once unassigned sell orders carry
	// this many shares in total. Either cutoff alone is sufficient.
	TotalSharesCutoff int64
	// SettleInterval is how often the watcher checks for rounds past
	// their end time.
	SettleInterval time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and the
// environment, applies defaults, and validates values. It returns an
// error for any invalid value.
func Load() (*Config, error) {
	_ = godotenv.Load() // best-effort; env vars win over .env

	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	roundLength, err := getDuration("ROUND_LENGTH", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid ROUND_LENGTH: %w", err)
	}
	if roundLength <= 0 {
		return nil, fmt.Errorf("invalid ROUND_LENGTH: must be positive")
	}

	sellerCutoff, err := getInt("ROUND_SELLER_CUTOFF", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid ROUND_SELLER_CUTOFF: %w", err)
	}
	if sellerCutoff < 1 {
		return nil, fmt.Errorf("invalid ROUND_SELLER_CUTOFF: must be >= 1")
	}

	sharesCutoff, err := getInt64("ROUND_SHARES_CUTOFF", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid ROUND_SHARES_CUTOFF: %w", err)
	}
	if sharesCutoff < 1 {
		return nil, fmt.Errorf("invalid ROUND_SHARES_CUTOFF: must be >= 1")
	}

	settleInterval, err := getDuration("SETTLE_INTERVAL", 1*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid SETTLE_INTERVAL: %w", err)
	}
	if settleInterval <= 0 {
		return nil, fmt.Errorf("invalid SETTLE_INTERVAL: must be positive")
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:              port,
		LogLevel:          logLevel,
		RoundLength:       roundLength,
		SellerCountCutoff: sellerCutoff,
		TotalSharesCutoff: sharesCutoff,
		SettleInterval:    settleInterval,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ShutdownTimeout:   shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
