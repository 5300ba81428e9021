package contracts

import "time"

// DailyTickerMetric is one computed summary for (ticker, date).
// (ticker, date) is the natural key; recomputation replaces the row
// instead of duplicating it. Nullable fields stay nil when the
// underlying data cannot support the statistic — absent is a normal
// result, not an error.
type DailyTickerMetric struct {
	ID                     int64     `json:"id"`
	Ticker                 string    `json:"ticker"`
	Date                   time.Time `json:"date"` // midnight in the reference timezone
	AvgSentimentScore      *float64  `json:"avg_sentiment_score,omitempty"`
	SentimentLabelDominant *string   `json:"sentiment_label_dominant,omitempty"`
	DailyReturn            *float64  `json:"daily_return,omitempty"`
	Correlation7D          *float64  `json:"correlation_7d,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// HasSentiment reports whether any scored news contributed to this row
func (m *DailyTickerMetric) HasSentiment() bool {
	return m.AvgSentimentScore != nil
}

// HasReturn reports whether a daily return could be computed
func (m *DailyTickerMetric) HasReturn() bool {
	return m.DailyReturn != nil
}

// SameValues reports whether the computed fields of two rows are equal.
// ID and CreatedAt are excluded: CreatedAt is fixed at first creation and
// ID is storage-assigned, so equal values mean a recompute was idempotent.
func (m *DailyTickerMetric) SameValues(other *DailyTickerMetric) bool {
	if m.Ticker != other.Ticker || !m.Date.Equal(other.Date) {
		return false
	}
	return eqFloatPtr(m.AvgSentimentScore, other.AvgSentimentScore) &&
		eqStrPtr(m.SentimentLabelDominant, other.SentimentLabelDominant) &&
		eqFloatPtr(m.DailyReturn, other.DailyReturn) &&
		eqFloatPtr(m.Correlation7D, other.Correlation7D)
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
