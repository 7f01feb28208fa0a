package config

import (
	"os"
	"strconv"
	"time"

	apperrors "pricemunch/priceworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Worker configuration
	RefreshInterval     time.Duration
	HealthCheckInterval time.Duration
	PayloadSpoolDir     string

	// Schedule monitoring configuration
	ScheduleConfigPath string
	AlertMultiplier    float64
	AlertGrace         time.Duration

	// Store defaults applied when extraction yields no currency/locale
	DefaultCurrency string
	DefaultLocale   string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	refreshInterval, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_SECONDS", "60"))
	healthInterval, _ := strconv.Atoi(getEnv("HEALTH_CHECK_INTERVAL_SECONDS", "300"))
	alertMultiplier, _ := strconv.ParseFloat(getEnv("SCHEDULE_ALERT_MULTIPLIER", "1.5"), 64)
	alertGrace, _ := strconv.Atoi(getEnv("SCHEDULE_ALERT_GRACE_SECONDS", "900"))

	return Config{
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "pricewatch"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RefreshInterval:      time.Duration(refreshInterval) * time.Second,
		HealthCheckInterval:  time.Duration(healthInterval) * time.Second,
		PayloadSpoolDir:      getEnv("PAYLOAD_SPOOL_DIR", "./spool"),
		ScheduleConfigPath:   getEnv("SCHEDULE_CONFIG_PATH", "./schedules.json"),
		AlertMultiplier:      alertMultiplier,
		AlertGrace:           time.Duration(alertGrace) * time.Second,
		DefaultCurrency:      getEnv("DEFAULT_CURRENCY", "EUR"),
		DefaultLocale:        getEnv("DEFAULT_LOCALE", "en"),
		Environment:          getEnv("PRICEWORKER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the worker cannot run with
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return apperrors.NewConfiguration("redis address must not be empty", nil)
	}
	if c.MemcacheAddr == "" {
		return apperrors.NewConfiguration("memcache address must not be empty", nil)
	}
	if c.RefreshInterval <= 0 {
		return apperrors.NewConfiguration("refresh interval must be positive", nil)
	}
	if c.HealthCheckInterval <= 0 {
		return apperrors.NewConfiguration("health check interval must be positive", nil)
	}
	if c.AlertMultiplier < 1 {
		return apperrors.NewConfiguration("alert multiplier must be at least 1", nil)
	}
	if c.AlertGrace < 0 {
		return apperrors.NewConfiguration("alert grace must not be negative", nil)
	}
	if c.RedisStreamCount <= 0 {
		return apperrors.NewConfiguration("redis stream count must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
