package pipeline

import (
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// SentimentAggregate is the reduction of one day's news for a ticker
type SentimentAggregate struct {
	AvgScore      *float64
	DominantLabel *string
	ScoredCount   int
	TotalCount    int
}

// AggregateSentiment reduces a day's events into an average score and a
// dominant label. Only scored events participate; with none, both
// outputs stay absent (never zero). Pure function of its inputs.
//
// Dominant label: most frequent label among scored events. Ties are
// broken by the latest published_at among the tied labels, so the
// result is deterministic and reproducible across runs. Events with
// identical counts and identical latest timestamps fall back to
// lexicographic order as a final deterministic tie-break.
func AggregateSentiment(events []*contracts.NewsEvent) SentimentAggregate {
	agg := SentimentAggregate{TotalCount: len(events)}

	var sum float64
	counts := make(map[string]int)
	latest := make(map[string]time.Time)

	for _, e := range events {
		if !e.IsScored() {
			continue
		}

		agg.ScoredCount++
		sum += *e.SentimentScore

		label := *e.SentimentLabel
		counts[label]++
		if e.PublishedAt.After(latest[label]) {
			latest[label] = e.PublishedAt
		}
	}

	if agg.ScoredCount == 0 {
		return agg
	}

	avg := sum / float64(agg.ScoredCount)
	agg.AvgScore = &avg

	var (
		dominant  string
		bestCount int
		bestTime  time.Time
		havePick  bool
	)
	for label, count := range counts {
		at := latest[label]
		switch {
		case !havePick,
			count > bestCount,
			count == bestCount && at.After(bestTime),
			count == bestCount && at.Equal(bestTime) && label < dominant:
			dominant = label
			bestCount = count
			bestTime = at
			havePick = true
		}
	}
	agg.DominantLabel = &dominant

	return agg
}
