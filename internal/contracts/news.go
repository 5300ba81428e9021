package contracts

import "time"

// NewsEvent represents one classified news item.
// Rows are produced by the ingestion collaborator and are read-only here:
// the pipeline never mutates or deletes them.
type NewsEvent struct {
	ID             int64     `json:"id"`
	Source         *string   `json:"source,omitempty"`
	Ticker         *string   `json:"ticker,omitempty"` // nil for market-wide news
	Headline       string    `json:"headline"`
	Summary        *string   `json:"summary,omitempty"`
	SentimentLabel *string   `json:"sentiment_label,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	IngestedAt     time.Time `json:"ingested_at"`
	URL            *string   `json:"url,omitempty"`
}

// IsScored reports whether the classifier scored this item.
// The label and score arrive together or not at all; an event with only
// one of the two is treated as unscored.
func (e *NewsEvent) IsScored() bool {
	return e.SentimentScore != nil && e.SentimentLabel != nil
}
