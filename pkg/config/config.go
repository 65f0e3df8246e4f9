package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Market data
	MarketsAPIURL    string
	NewsAPIURL       string
	MarketFetchLimit int
	MarketCacheTTL   time.Duration

	// Trading cycle
	CycleEnabled      bool
	CycleInterval     time.Duration
	ForceRefresh      bool
	MaxTradesPerCycle int

	// Duplicate-check policy: "fail-open" or "fail-closed"
	DuplicatePolicy string

	// Price stream
	StreamEnabled      bool
	StreamURL          string
	StreamDialTimeout  time.Duration
	StreamInitialDelay time.Duration
	StreamMaxDelay     time.Duration
	StreamBackoffMult  float64

	// Storage
	StorageMode  string // "postgres" or "noop"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Market data defaults
		MarketsAPIURL:    getEnvOrDefault("MARKETS_API_URL", "https://gamma-api.polymarket.com"),
		NewsAPIURL:       getEnvOrDefault("NEWS_API_URL", "https://news-api.mira.markets"),
		MarketFetchLimit: getIntOrDefault("MARKET_FETCH_LIMIT", 200),
		MarketCacheTTL:   getDurationOrDefault("MARKET_CACHE_TTL", 5*time.Minute),

		// Trading cycle defaults
		CycleEnabled:      getBoolOrDefault("CYCLE_ENABLED", true),
		CycleInterval:     getDurationOrDefault("CYCLE_INTERVAL", 10*time.Minute),
		ForceRefresh:      getBoolOrDefault("FORCE_REFRESH", false),
		MaxTradesPerCycle: getIntOrDefault("MAX_TRADES_PER_CYCLE", 3),

		DuplicatePolicy: getEnvOrDefault("DUPLICATE_CHECK_POLICY", "fail-open"),

		// Price stream defaults
		StreamEnabled:      getBoolOrDefault("MARKET_STREAM_ENABLED", false),
		StreamURL:          getEnvOrDefault("MARKET_STREAM_URL", "wss://ws-subscriptions-clob.polymarket.com/ws/market"),
		StreamDialTimeout:  getDurationOrDefault("MARKET_STREAM_DIAL_TIMEOUT", 10*time.Second),
		StreamInitialDelay: getDurationOrDefault("MARKET_STREAM_RECONNECT_INITIAL_DELAY", 1*time.Second),
		StreamMaxDelay:     getDurationOrDefault("MARKET_STREAM_RECONNECT_MAX_DELAY", 30*time.Second),
		StreamBackoffMult:  getFloat64OrDefault("MARKET_STREAM_RECONNECT_BACKOFF_MULTIPLIER", 2.0),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "noop"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "mira"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "mira123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "mira_engine"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.MarketsAPIURL == "" {
		return fmt.Errorf("MARKETS_API_URL cannot be empty")
	}

	if c.NewsAPIURL == "" {
		return fmt.Errorf("NEWS_API_URL cannot be empty")
	}

	if c.MarketFetchLimit < 0 {
		return fmt.Errorf("MARKET_FETCH_LIMIT must be non-negative (0 = unlimited), got %d", c.MarketFetchLimit)
	}

	if c.CycleInterval <= 0 {
		return fmt.Errorf("CYCLE_INTERVAL must be positive, got %s", c.CycleInterval)
	}

	if c.MaxTradesPerCycle < 0 {
		return fmt.Errorf("MAX_TRADES_PER_CYCLE must be non-negative, got %d", c.MaxTradesPerCycle)
	}

	if c.DuplicatePolicy != "fail-open" && c.DuplicatePolicy != "fail-closed" {
		return fmt.Errorf("DUPLICATE_CHECK_POLICY must be 'fail-open' or 'fail-closed', got %q", c.DuplicatePolicy)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "noop" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'noop', got %q", c.StorageMode)
	}

	if c.StreamEnabled && c.StreamURL == "" {
		return fmt.Errorf("MARKET_STREAM_URL cannot be empty when the stream is enabled")
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
