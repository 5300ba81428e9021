package timeseries

import (
	"context"
	"fmt"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/logger"
	"github.com/wonny/tickerpulse/pkg/redis"
)

const (
	// DefaultDays is the series length when the caller does not ask for one
	DefaultDays = 30

	// MaxDays bounds the series length a single request can ask for
	MaxDays = 90

	dateLayout = "2006-01-02"
)

// Builder assembles the per-ticker read-side series served by the API.
// It only reads daily_ticker_metrics; the pipeline owns the writes.
type Builder struct {
	metrics contracts.MetricRepository
	cache   *redis.Cache // optional
	logger  *logger.Logger
}

// NewBuilder creates a new timeseries builder
func NewBuilder(metrics contracts.MetricRepository, cache *redis.Cache, log *logger.Logger) *Builder {
	return &Builder{
		metrics: metrics,
		cache:   cache,
		logger:  log.Named("timeseries"),
	}
}

// Build returns up to days points ending at the ticker's most recent
// metric date. days out of [1, MaxDays] is clamped, not rejected. A
// ticker with no metric rows yields an empty series, not an error.
func (b *Builder) Build(ctx context.Context, ticker string, days int) (*contracts.Timeseries, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}
	days = clampDays(days)

	if series, ok := b.fromCache(ctx, ticker, days); ok {
		return series, nil
	}

	latest, found, err := b.metrics.GetLatestDate(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("latest metric date: %w", err)
	}
	if !found {
		return &contracts.Timeseries{Ticker: ticker, Points: []contracts.TimeseriesPoint{}}, nil
	}

	from := latest.AddDate(0, 0, -(days - 1))
	rows, err := b.metrics.GetByTickerAndDateRange(ctx, ticker, from, latest)
	if err != nil {
		return nil, fmt.Errorf("metric range: %w", err)
	}

	series := &contracts.Timeseries{
		Ticker:   ticker,
		FromDate: from.Format(dateLayout),
		ToDate:   latest.Format(dateLayout),
		Points:   make([]contracts.TimeseriesPoint, 0, len(rows)),
	}
	for _, row := range rows {
		series.Points = append(series.Points, contracts.TimeseriesPoint{
			Date:              row.Date.Format(dateLayout),
			AvgSentiment:      row.AvgSentimentScore,
			DominantSentiment: row.SentimentLabelDominant,
			DailyReturn:       row.DailyReturn,
			RollingCorr7D:     row.Correlation7D,
		})
	}

	b.toCache(ctx, ticker, days, series)
	return series, nil
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

func (b *Builder) fromCache(ctx context.Context, ticker string, days int) (*contracts.Timeseries, bool) {
	if b.cache == nil {
		return nil, false
	}
	var series contracts.Timeseries
	hit, err := b.cache.Get(ctx, redis.TimeseriesKey(ticker, days), &series)
	if err != nil {
		b.logger.WithError(err).WithField("ticker", ticker).Warn("Timeseries cache read failed")
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &series, true
}

func (b *Builder) toCache(ctx context.Context, ticker string, days int, series *contracts.Timeseries) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Set(ctx, redis.TimeseriesKey(ticker, days), series, redis.TTLMedium); err != nil {
		b.logger.WithError(err).WithField("ticker", ticker).Warn("Timeseries cache write failed")
	}
}
