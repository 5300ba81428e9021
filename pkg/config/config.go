package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: all environment variables are read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Metrics pipeline
	Pipeline PipelineConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
	MetricsPort    string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// PipelineConfig holds the daily metrics pipeline configuration
type PipelineConfig struct {
	// Tickers is the set of securities the pipeline computes metrics for.
	Tickers []string

	// Timezone is the reference timezone for day bucketing.
	// Every calendar-day boundary (news windows, price closes, the
	// daily_ticker_metrics date column) is midnight-to-midnight in this
	// location. The schema itself carries no timezone policy, so this
	// must be an explicit choice, never inferred.
	Timezone *time.Location

	// CorrelationWindowDays is the trailing window for the rolling
	// sentiment/return correlation (calendar days, inclusive of the
	// target date).
	CorrelationWindowDays int

	// CorrelationMinPairs is the minimum number of complete
	// (sentiment, return) pairs required before a correlation is
	// reported. Below this the statistic is degenerate and stays absent.
	CorrelationMinPairs int

	// BackfillDays is the default lookback for the backfill command and
	// the catchup job.
	BackfillDays int
}

// Load reads configuration from environment variables
// ⭐ SSOT: this is the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	tz, err := loadTimezone()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Pipeline
		Pipeline: PipelineConfig{
			Tickers:               getEnvAsList("TICKERS", "AAPL,MSFT,TSLA,NVDA"),
			Timezone:              tz,
			CorrelationWindowDays: getEnvAsInt("CORRELATION_WINDOW_DAYS", 7),
			CorrelationMinPairs:   getEnvAsInt("CORRELATION_MIN_PAIRS", 3),
			BackfillDays:          getEnvAsInt("BACKFILL_DAYS", 30),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Pipeline.Tickers) == 0 {
		return fmt.Errorf("TICKERS must contain at least one ticker")
	}

	if c.Pipeline.CorrelationWindowDays < 2 {
		return fmt.Errorf("CORRELATION_WINDOW_DAYS must be at least 2")
	}

	if c.Pipeline.CorrelationMinPairs < 3 {
		return fmt.Errorf("CORRELATION_MIN_PAIRS must be at least 3 (a 2-point correlation is degenerate)")
	}

	return nil
}

// loadTimezone resolves METRICS_TIMEZONE into a *time.Location
func loadTimezone() (*time.Location, error) {
	name := getEnv("METRICS_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			list = append(list, p)
		}
	}
	return list
}
