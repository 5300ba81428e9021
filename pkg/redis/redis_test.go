package redis

import (
	"context"
	"testing"

	"github.com/wonny/tickerpulse/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestCache_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "pulse")

	// When Redis is disabled, cache operations should be no-ops
	var result string
	found, err := cache.Get(context.Background(), "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Set(context.Background(), "key", "value", TTLShort); err != nil {
		t.Errorf("Set() error = %v", err)
	}

	if err := cache.DeletePrefix(context.Background(), "timeseries:AAPL:"); err != nil {
		t.Errorf("DeletePrefix() error = %v", err)
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		fn       func() string
		expected string
	}{
		{
			name:     "TimeseriesKey",
			fn:       func() string { return TimeseriesKey("AAPL", 7) },
			expected: "timeseries:AAPL:7",
		},
		{
			name:     "TimeseriesPrefix",
			fn:       func() string { return TimeseriesPrefix("AAPL") },
			expected: "timeseries:AAPL:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
