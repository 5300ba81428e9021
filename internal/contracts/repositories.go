package contracts

import (
	"context"
	"time"
)

// ⭐ SSOT: repository interfaces are defined here and nowhere else

// NewsRepository reads classified news events (read-only for the pipeline)
type NewsRepository interface {
	// GetByTickerAndRange returns scored and unscored events for a ticker
	// with published_at in [from, to), ordered by published_at ascending.
	GetByTickerAndRange(ctx context.Context, ticker string, from, to time.Time) ([]*NewsEvent, error)
}

// PriceRepository reads price snapshots (read-only for the pipeline)
type PriceRepository interface {
	// GetByTickerAndRange returns snapshots for a ticker with ts in
	// [from, to), ordered by ts ascending.
	GetByTickerAndRange(ctx context.Context, ticker string, from, to time.Time) ([]*PriceSnapshot, error)
}

// MetricRepository manages computed daily metrics.
// The pipeline is the exclusive writer of daily_ticker_metrics.
type MetricRepository interface {
	// Upsert inserts or replaces the row keyed by (ticker, date) in one
	// atomic statement. created_at keeps its first-creation value.
	Upsert(ctx context.Context, metric *DailyTickerMetric) error

	GetByTickerAndDate(ctx context.Context, ticker string, date time.Time) (*DailyTickerMetric, error)

	// GetByTickerAndDateRange returns rows with date in [from, to],
	// ordered by date ascending.
	GetByTickerAndDateRange(ctx context.Context, ticker string, from, to time.Time) ([]*DailyTickerMetric, error)

	// GetLatestDate returns the most recent date with a metric row for
	// the ticker; found is false when no rows exist.
	GetLatestDate(ctx context.Context, ticker string) (date time.Time, found bool, err error)
}

// Snapshot is one consistent unit-of-work view over the store.
// All reads and the final upsert of a compute run happen through the same
// snapshot, so the run never observes the ingestion collaborators'
// writes mid-flight. Rollback before Commit leaves no trace.
type Snapshot interface {
	News() NewsRepository
	Prices() PriceRepository
	Metrics() MetricRepository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store opens snapshots
type Store interface {
	Begin(ctx context.Context) (Snapshot, error)
}
