package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

type computeCall struct {
	ticker string
	date   time.Time
}

type fakeComputer struct {
	calls   []computeCall
	failFor map[string]error
}

func (c *fakeComputer) Compute(ctx context.Context, ticker string, date time.Time) (*contracts.DailyTickerMetric, error) {
	c.calls = append(c.calls, computeCall{ticker: ticker, date: date})
	if err, ok := c.failFor[ticker]; ok {
		return nil, err
	}
	return &contracts.DailyTickerMetric{Ticker: ticker, Date: date}, nil
}

func testConfig(tickers ...string) *config.Config {
	return &config.Config{
		Env: "test",
		Pipeline: config.PipelineConfig{
			Tickers:               tickers,
			Timezone:              time.UTC,
			CorrelationWindowDays: 7,
			CorrelationMinPairs:   3,
		},
		LogLevel:  "error",
		LogFormat: "json",
	}
}

func TestDailyMetricsJob_RunsEveryTicker(t *testing.T) {
	cfg := testConfig("AAPL", "MSFT", "TSLA")
	computer := &fakeComputer{}
	job := NewDailyMetricsJob(computer, cfg, logger.New(cfg))

	err := job.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, computer.calls, 3)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	for i, ticker := range cfg.Pipeline.Tickers {
		assert.Equal(t, ticker, computer.calls[i].ticker)
		assert.Equal(t, yesterday, computer.calls[i].date.Format("2006-01-02"))
	}
}

func TestDailyMetricsJob_OneFailureDoesNotStopTheRest(t *testing.T) {
	cfg := testConfig("AAPL", "MSFT", "TSLA")
	computer := &fakeComputer{failFor: map[string]error{"MSFT": errors.New("boom")}}
	job := NewDailyMetricsJob(computer, cfg, logger.New(cfg))

	err := job.Run(context.Background())
	require.Error(t, err, "a failed ticker must surface so the scheduler retries")
	assert.Len(t, computer.calls, 3, "remaining tickers still run")
}

func TestMetricsCatchupJob_CoversTrailingDays(t *testing.T) {
	cfg := testConfig("AAPL", "MSFT")
	computer := &fakeComputer{}
	job := NewMetricsCatchupJob(computer, cfg, logger.New(cfg))

	err := job.Run(context.Background())
	require.NoError(t, err)

	// 2 tickers x 3 trailing days
	assert.Len(t, computer.calls, 6)
}

func TestJobSchedules(t *testing.T) {
	cfg := testConfig("AAPL")
	log := logger.New(cfg)

	daily := NewDailyMetricsJob(&fakeComputer{}, cfg, log)
	assert.Equal(t, "daily_metrics", daily.Name())
	assert.Equal(t, "0 0 2 * * *", daily.Schedule())

	catchup := NewMetricsCatchupJob(&fakeComputer{}, cfg, log)
	assert.Equal(t, "metrics_catchup", catchup.Name())
	assert.Equal(t, "0 0 */6 * * *", catchup.Schedule())
}
