package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerpulse/internal/contracts"
)

func scoredEvent(label string, score float64, publishedAt time.Time) *contracts.NewsEvent {
	return &contracts.NewsEvent{
		Headline:       "headline",
		SentimentLabel: &label,
		SentimentScore: &score,
		PublishedAt:    publishedAt,
	}
}

func TestAggregateSentiment_NoEvents(t *testing.T) {
	agg := AggregateSentiment(nil)

	assert.Nil(t, agg.AvgScore, "no events must leave the average absent, not zero")
	assert.Nil(t, agg.DominantLabel)
	assert.Equal(t, 0, agg.ScoredCount)
	assert.Equal(t, 0, agg.TotalCount)
}

func TestAggregateSentiment_OnlyUnscoredEvents(t *testing.T) {
	events := []*contracts.NewsEvent{
		{Headline: "no classifier output yet", PublishedAt: time.Now()},
		{Headline: "another unscored item", PublishedAt: time.Now()},
	}

	agg := AggregateSentiment(events)

	assert.Nil(t, agg.AvgScore)
	assert.Nil(t, agg.DominantLabel)
	assert.Equal(t, 0, agg.ScoredCount)
	assert.Equal(t, 2, agg.TotalCount)
}

func TestAggregateSentiment_Average(t *testing.T) {
	base := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	events := []*contracts.NewsEvent{
		scoredEvent("positive", 0.8, base),
		scoredEvent("positive", 0.4, base.Add(time.Hour)),
		scoredEvent("negative", -0.6, base.Add(2*time.Hour)),
		// Unscored events do not contribute to the mean
		{Headline: "unscored", PublishedAt: base.Add(3 * time.Hour)},
	}

	agg := AggregateSentiment(events)

	require.NotNil(t, agg.AvgScore)
	assert.InDelta(t, (0.8+0.4-0.6)/3, *agg.AvgScore, 1e-12)
	assert.Equal(t, 3, agg.ScoredCount)
	assert.Equal(t, 4, agg.TotalCount)

	require.NotNil(t, agg.DominantLabel)
	assert.Equal(t, "positive", *agg.DominantLabel)
}

func TestAggregateSentiment_TieBreakLatestWins(t *testing.T) {
	// Equal counts: the label of the event with the latest published_at
	// among the tied labels wins.
	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	events := []*contracts.NewsEvent{
		scoredEvent("A", 0.5, day.Add(9*time.Hour)),
		scoredEvent("B", -0.5, day.Add(10*time.Hour)),
	}

	agg := AggregateSentiment(events)

	require.NotNil(t, agg.DominantLabel)
	assert.Equal(t, "B", *agg.DominantLabel)
}

func TestAggregateSentiment_TieBreakIsOrderIndependent(t *testing.T) {
	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	forward := []*contracts.NewsEvent{
		scoredEvent("A", 0.5, day.Add(9*time.Hour)),
		scoredEvent("B", -0.5, day.Add(10*time.Hour)),
		scoredEvent("A", 0.2, day.Add(11*time.Hour)),
		scoredEvent("B", -0.2, day.Add(12*time.Hour)),
	}
	reversed := []*contracts.NewsEvent{forward[3], forward[2], forward[1], forward[0]}

	aggF := AggregateSentiment(forward)
	aggR := AggregateSentiment(reversed)

	require.NotNil(t, aggF.DominantLabel)
	require.NotNil(t, aggR.DominantLabel)
	assert.Equal(t, *aggF.DominantLabel, *aggR.DominantLabel,
		"tie-break must not depend on input order")
	assert.Equal(t, "B", *aggF.DominantLabel, "latest published_at is a B event")
}

func TestAggregateSentiment_FrequencyBeatsRecency(t *testing.T) {
	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	events := []*contracts.NewsEvent{
		scoredEvent("positive", 0.5, day.Add(1*time.Hour)),
		scoredEvent("positive", 0.6, day.Add(2*time.Hour)),
		// Most recent, but only one occurrence
		scoredEvent("negative", -0.9, day.Add(23*time.Hour)),
	}

	agg := AggregateSentiment(events)

	require.NotNil(t, agg.DominantLabel)
	assert.Equal(t, "positive", *agg.DominantLabel)
}

func TestAggregateSentiment_IdenticalTimestampTie(t *testing.T) {
	// Same count, same latest instant: lexicographic fallback keeps the
	// result deterministic.
	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	events := []*contracts.NewsEvent{
		scoredEvent("neutral", 0.0, at),
		scoredEvent("bearish", -0.1, at),
	}

	agg := AggregateSentiment(events)

	require.NotNil(t, agg.DominantLabel)
	assert.Equal(t, "bearish", *agg.DominantLabel)
}
