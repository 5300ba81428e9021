package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// MetricRepository implements contracts.MetricRepository over Postgres
// ⭐ SSOT: daily_ticker_metrics writes happen here and nowhere else
type MetricRepository struct {
	db DBTX
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(db DBTX) *MetricRepository {
	return &MetricRepository{db: db}
}

// Upsert inserts or replaces the row keyed by (ticker, date).
// Single-statement ON CONFLICT keeps the replace atomic: a failed run
// can never leave a half-written row. created_at is deliberately not in
// the UPDATE set, so it keeps the first-creation time and a recompute
// with unchanged inputs stores a byte-identical row.
func (r *MetricRepository) Upsert(ctx context.Context, metric *contracts.DailyTickerMetric) error {
	query := `
		INSERT INTO daily_ticker_metrics
			(ticker, date, avg_sentiment_score, sentiment_label_dominant, daily_return, correlation_7d, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker, date) DO UPDATE SET
			avg_sentiment_score = EXCLUDED.avg_sentiment_score,
			sentiment_label_dominant = EXCLUDED.sentiment_label_dominant,
			daily_return = EXCLUDED.daily_return,
			correlation_7d = EXCLUDED.correlation_7d
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		metric.Ticker, metric.Date, metric.AvgSentimentScore,
		metric.SentimentLabelDominant, metric.DailyReturn, metric.Correlation7D,
		metric.CreatedAt,
	).Scan(&metric.ID, &metric.CreatedAt)
}

// GetByTickerAndDate retrieves the metric row for a specific key.
// Returns (nil, nil) when no row exists: an empty result is a normal
// outcome, not an error.
func (r *MetricRepository) GetByTickerAndDate(ctx context.Context, ticker string, date time.Time) (*contracts.DailyTickerMetric, error) {
	query := `
		SELECT id, ticker, date, avg_sentiment_score, sentiment_label_dominant, daily_return, correlation_7d, created_at
		FROM daily_ticker_metrics
		WHERE ticker = $1 AND date = $2
	`

	var m contracts.DailyTickerMetric
	err := r.db.QueryRow(ctx, query, ticker, date).Scan(
		&m.ID, &m.Ticker, &m.Date, &m.AvgSentimentScore,
		&m.SentimentLabelDominant, &m.DailyReturn, &m.Correlation7D, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetByTickerAndDateRange retrieves rows with date in [from, to],
// ordered by date ascending (uses the unique (ticker, date) index).
func (r *MetricRepository) GetByTickerAndDateRange(ctx context.Context, ticker string, from, to time.Time) ([]*contracts.DailyTickerMetric, error) {
	query := `
		SELECT id, ticker, date, avg_sentiment_score, sentiment_label_dominant, daily_return, correlation_7d, created_at
		FROM daily_ticker_metrics
		WHERE ticker = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, ticker, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []*contracts.DailyTickerMetric
	for rows.Next() {
		var m contracts.DailyTickerMetric
		if err := rows.Scan(
			&m.ID, &m.Ticker, &m.Date, &m.AvgSentimentScore,
			&m.SentimentLabelDominant, &m.DailyReturn, &m.Correlation7D, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		metrics = append(metrics, &m)
	}
	return metrics, rows.Err()
}

// GetLatestDate returns the most recent metric date for a ticker
func (r *MetricRepository) GetLatestDate(ctx context.Context, ticker string) (time.Time, bool, error) {
	query := `
		SELECT date
		FROM daily_ticker_metrics
		WHERE ticker = $1
		ORDER BY date DESC
		LIMIT 1
	`

	var date time.Time
	err := r.db.QueryRow(ctx, query, ticker).Scan(&date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return date, true, nil
}
