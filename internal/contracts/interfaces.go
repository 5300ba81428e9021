package contracts

import (
	"context"
	"time"
)

// MetricsComputer runs the daily metrics pipeline for one unit of work
// ⭐ SSOT: the single externally invoked pipeline entry point
//
// Callers must not run two units for the same (ticker, date)
// concurrently; the upsert would race. Different keys are independent
// and may run in parallel.
type MetricsComputer interface {
	Compute(ctx context.Context, ticker string, date time.Time) (*DailyTickerMetric, error)
}

// TimeseriesBuilder assembles the read-side series consumed by the API
type TimeseriesBuilder interface {
	Build(ctx context.Context, ticker string, days int) (*Timeseries, error)
}

// TimeseriesPoint is one day of computed metrics, JSON-ready
type TimeseriesPoint struct {
	Date              string   `json:"date"` // YYYY-MM-DD
	AvgSentiment      *float64 `json:"avg_sentiment"`
	DominantSentiment *string  `json:"dominant_sentiment"`
	DailyReturn       *float64 `json:"daily_return"`
	RollingCorr7D     *float64 `json:"rolling_corr_7d"`
}

// Timeseries is the per-ticker series returned by the API
type Timeseries struct {
	Ticker   string            `json:"ticker"`
	FromDate string            `json:"from_date,omitempty"`
	ToDate   string            `json:"to_date,omitempty"`
	Points   []TimeseriesPoint `json:"points"`
}
