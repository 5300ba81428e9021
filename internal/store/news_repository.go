package store

import (
	"context"
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// NewsRepository implements contracts.NewsRepository over Postgres.
// The pipeline only ever reads news_events; the ingestion collaborator
// owns all writes.
type NewsRepository struct {
	db DBTX
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db DBTX) *NewsRepository {
	return &NewsRepository{db: db}
}

// GetByTickerAndRange retrieves events for a ticker with published_at in
// [from, to). The range predicate on (ticker, published_at) keeps the
// query on the supporting index instead of a full scan.
func (r *NewsRepository) GetByTickerAndRange(ctx context.Context, ticker string, from, to time.Time) ([]*contracts.NewsEvent, error) {
	query := `
		SELECT id, source, ticker, headline, summary, sentiment_label, sentiment_score, published_at, ingested_at, url
		FROM news_events
		WHERE ticker = $1 AND published_at >= $2 AND published_at < $3
		ORDER BY published_at ASC
	`

	rows, err := r.db.Query(ctx, query, ticker, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*contracts.NewsEvent
	for rows.Next() {
		var e contracts.NewsEvent
		if err := rows.Scan(
			&e.ID, &e.Source, &e.Ticker, &e.Headline, &e.Summary,
			&e.SentimentLabel, &e.SentimentScore, &e.PublishedAt, &e.IngestedAt, &e.URL,
		); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
