package logger_test

import (
	"errors"

	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Application started")
	log.Warn("Low disk space")
	log.Error("Failed to connect")

	// Formatted logging
	log.Infof("Computing metrics for %s", "AAPL")
	log.Warnf("Retry attempt %d of %d", 3, 5)

	// Output:
	// (console output with timestamps)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	runLog := log.WithField("ticker", "MSFT")
	runLog.Info("Daily metrics computed")

	// Add multiple fields
	metricLog := log.WithFields(map[string]interface{}{
		"ticker":       "NVDA",
		"date":         "2026-08-26",
		"news_count":   12,
		"daily_return": 0.0132,
	})
	metricLog.Info("Metric row upserted")

	// Output:
	// {"level":"info","ticker":"MSFT","message":"Daily metrics computed",...}
	// {"level":"info","ticker":"NVDA","date":"2026-08-26","news_count":12,"daily_return":0.0132,"message":"Metric row upserted",...}
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("database connection timeout")
	log.WithError(err).Error("Failed to upsert daily metric")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"ticker": "TSLA",
			"date":   "2026-08-26",
		}).
		Error("Compute run failed")

	// Output:
	// {"level":"error","error":"database connection timeout","message":"Failed to upsert daily metric",...}
	// {"level":"error","error":"database connection timeout","ticker":"TSLA","date":"2026-08-26","message":"Compute run failed",...}
}
