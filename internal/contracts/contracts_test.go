package contracts

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestNewsEvent_IsScored(t *testing.T) {
	tests := []struct {
		name  string
		event NewsEvent
		want  bool
	}{
		{
			name: "scored event",
			event: NewsEvent{
				Headline:       "Apple beats earnings estimates",
				SentimentLabel: strPtr("positive"),
				SentimentScore: f64Ptr(0.87),
			},
			want: true,
		},
		{
			name: "unscored event",
			event: NewsEvent{
				Headline: "Apple schedules product event",
			},
			want: false,
		},
		{
			name: "score without label is not scored",
			event: NewsEvent{
				Headline:       "Partial classifier output",
				SentimentScore: f64Ptr(0.5),
			},
			want: false,
		},
		{
			name: "label without score is not scored",
			event: NewsEvent{
				Headline:       "Partial classifier output",
				SentimentLabel: strPtr("neutral"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsScored(); got != tt.want {
				t.Errorf("IsScored() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    PriceSnapshot
		wantErr bool
	}{
		{
			name:    "valid snapshot",
			snap:    PriceSnapshot{ID: 1, Ticker: "AAPL", Price: 231.4, TS: time.Now()},
			wantErr: false,
		},
		{
			name:    "empty ticker",
			snap:    PriceSnapshot{ID: 2, Price: 100, TS: time.Now()},
			wantErr: true,
		},
		{
			name:    "negative price",
			snap:    PriceSnapshot{ID: 3, Ticker: "TSLA", Price: -1, TS: time.Now()},
			wantErr: true,
		},
		{
			// Zero is not malformed; the return calculator guards it
			name:    "zero price passes validation",
			snap:    PriceSnapshot{ID: 4, Ticker: "MSFT", Price: 0, TS: time.Now()},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDailyTickerMetric_SameValues(t *testing.T) {
	date := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	base := DailyTickerMetric{
		Ticker:                 "AAPL",
		Date:                   date,
		AvgSentimentScore:      f64Ptr(0.42),
		SentimentLabelDominant: strPtr("positive"),
		DailyReturn:            f64Ptr(0.013),
		Correlation7D:          nil,
	}

	same := base
	same.ID = 999
	same.CreatedAt = time.Now()
	// Distinct pointers, equal values
	same.AvgSentimentScore = f64Ptr(0.42)
	same.SentimentLabelDominant = strPtr("positive")
	same.DailyReturn = f64Ptr(0.013)

	if !base.SameValues(&same) {
		t.Error("Expected rows with equal computed fields to match")
	}

	diff := same
	diff.DailyReturn = f64Ptr(0.014)
	if base.SameValues(&diff) {
		t.Error("Expected rows with different returns to differ")
	}

	absent := same
	absent.AvgSentimentScore = nil
	if base.SameValues(&absent) {
		t.Error("Expected nil vs non-nil sentiment to differ")
	}
}

func TestDailyTickerMetric_JSON(t *testing.T) {
	original := DailyTickerMetric{
		ID:                     7,
		Ticker:                 "NVDA",
		Date:                   time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		AvgSentimentScore:      f64Ptr(-0.12),
		SentimentLabelDominant: strPtr("negative"),
		CreatedAt:              time.Date(2026, 8, 27, 1, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded DailyTickerMetric
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !original.SameValues(&decoded) {
		t.Errorf("Round-tripped metric differs: %+v vs %+v", original, decoded)
	}

	// Absent fields must serialize as absent, not zero
	if decoded.DailyReturn != nil || decoded.Correlation7D != nil {
		t.Error("Expected absent fields to stay nil after round trip")
	}
}
