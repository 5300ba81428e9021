package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
	"github.com/wonny/tickerpulse/pkg/metrics"
	"github.com/wonny/tickerpulse/pkg/redis"
)

// Input validation errors. Everything else the pipeline encounters in
// the data itself (missing days, zero closes, degenerate series) is a
// normal absent-field outcome, not an error.
var (
	ErrEmptyTicker = errors.New("ticker must not be empty")
	ErrZeroDate    = errors.New("date must be set")
)

// Computer runs the daily metrics pipeline for one (ticker, date)
// ⭐ SSOT: daily_ticker_metrics rows are produced here and nowhere else
//
// One call to Compute is one unit of work: read news and prices on a
// single snapshot, aggregate sentiment, compute the daily return and
// the rolling correlation, upsert one row. Callers (scheduler, API
// trigger) must not run the same (ticker, date) concurrently; different
// keys are independent.
type Computer struct {
	store  contracts.Store
	cfg    config.PipelineConfig
	cache  *redis.Cache // optional; invalidated after a successful write
	logger *logger.Logger
}

// NewComputer creates a new metrics computer
func NewComputer(store contracts.Store, cfg config.PipelineConfig, cache *redis.Cache, log *logger.Logger) *Computer {
	return &Computer{
		store:  store,
		cfg:    cfg,
		cache:  cache,
		logger: log.Named("pipeline"),
	}
}

// Compute computes and persists the daily metric row for (ticker, date).
// Returns the stored row. Absent fields in the result are normal
// nullable outcomes; only malformed input and persistence failures
// surface as errors, and a failed run leaves any previous row untouched.
func (c *Computer) Compute(ctx context.Context, ticker string, date time.Time) (*contracts.DailyTickerMetric, error) {
	start := time.Now()
	metric, err := c.compute(ctx, ticker, date)
	metrics.ObserveCompute(ticker, start, err)
	return metric, err
}

func (c *Computer) compute(ctx context.Context, ticker string, date time.Time) (*contracts.DailyTickerMetric, error) {
	if ticker == "" {
		return nil, ErrEmptyTicker
	}
	if date.IsZero() {
		return nil, ErrZeroDate
	}

	loc := c.cfg.Timezone
	day := startOfDay(date, loc)
	dayEnd := day.AddDate(0, 0, 1)

	// Trailing correlation window, inclusive of the target day
	windowStart := day.AddDate(0, 0, -(c.cfg.CorrelationWindowDays - 1))

	// Prices reach further back so the oldest window day still finds a
	// previous close for its return.
	priceFrom := windowStart.AddDate(0, 0, -priorCloseLookbackDays)

	snap, err := c.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer snap.Rollback(ctx)

	news, err := snap.News().GetByTickerAndRange(ctx, ticker, windowStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	prices, err := snap.Prices().GetByTickerAndRange(ctx, ticker, priceFrom, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	for _, p := range prices {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("malformed price input: %w", err)
		}
	}

	series := BuildPriceSeries(prices, loc)
	newsByDay := bucketNewsByDay(news, loc)

	var (
		targetAgg    SentimentAggregate
		targetReturn *float64
		sentiments   []float64
		returns      []float64
	)

	for offset := 0; offset < c.cfg.CorrelationWindowDays; offset++ {
		d := windowStart.AddDate(0, 0, offset)
		agg := AggregateSentiment(newsByDay[dayKey(d, loc)])
		ret, zeroBase := series.ReturnOn(d)

		if zeroBase {
			// Not fatal: the field stays absent, but flag it
			metrics.DataAnomalies.WithLabelValues(ticker, "zero_base_price").Inc()
			c.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"date":   dayKey(d, loc),
			}).Warn("Zero base price, daily return left absent")
		}

		if d.Equal(day) {
			targetAgg = agg
			targetReturn = ret
		}

		// Only days with both values participate in the correlation
		if agg.AvgScore != nil && ret != nil {
			sentiments = append(sentiments, *agg.AvgScore)
			returns = append(returns, *ret)
		}
	}

	correlation := c.correlate(ticker, sentiments, returns)
	c.countAbsences(targetAgg, targetReturn)

	metric := &contracts.DailyTickerMetric{
		Ticker:                 ticker,
		Date:                   day,
		AvgSentimentScore:      targetAgg.AvgScore,
		SentimentLabelDominant: targetAgg.DominantLabel,
		DailyReturn:            targetReturn,
		Correlation7D:          correlation,
		CreatedAt:              time.Now().UTC(),
	}

	if err := snap.Metrics().Upsert(ctx, metric); err != nil {
		return nil, fmt.Errorf("upsert daily metric: %w", err)
	}

	if err := snap.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit daily metric: %w", err)
	}

	c.invalidateCache(ctx, ticker)

	c.logger.WithFields(map[string]interface{}{
		"ticker":      ticker,
		"date":        dayKey(day, loc),
		"news_total":  targetAgg.TotalCount,
		"news_scored": targetAgg.ScoredCount,
		"has_return":  metric.HasReturn(),
		"has_corr":    metric.Correlation7D != nil,
	}).Info("Daily metric computed")

	return metric, nil
}

// correlate applies the minimum-pair policy and the Pearson engine
func (c *Computer) correlate(ticker string, sentiments, returns []float64) *float64 {
	if len(sentiments) < c.cfg.CorrelationMinPairs {
		metrics.AbsentFields.WithLabelValues("correlation_7d", "insufficient_pairs").Inc()
		return nil
	}

	corr, ok := Pearson(sentiments, returns)
	if !ok {
		// Zero variance: undefined, absent rather than zero
		metrics.AbsentFields.WithLabelValues("correlation_7d", "degenerate").Inc()
		c.logger.WithField("ticker", ticker).Debug("Degenerate correlation window, field left absent")
		return nil
	}
	return &corr
}

// countAbsences records absent target-day fields for observability
func (c *Computer) countAbsences(agg SentimentAggregate, ret *float64) {
	if agg.AvgScore == nil {
		metrics.AbsentFields.WithLabelValues("avg_sentiment_score", "no_data").Inc()
	}
	if ret == nil {
		metrics.AbsentFields.WithLabelValues("daily_return", "no_data").Inc()
	}
}

// invalidateCache drops cached timeseries responses for the ticker.
// Best effort: a stale cache entry expires on its own TTL anyway.
func (c *Computer) invalidateCache(ctx context.Context, ticker string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.DeletePrefix(ctx, redis.TimeseriesPrefix(ticker)); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Timeseries cache invalidation failed")
	}
}

// bucketNewsByDay groups events by calendar day in loc
func bucketNewsByDay(events []*contracts.NewsEvent, loc *time.Location) map[string][]*contracts.NewsEvent {
	byDay := make(map[string][]*contracts.NewsEvent)
	for _, e := range events {
		key := dayKey(e.PublishedAt, loc)
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}
