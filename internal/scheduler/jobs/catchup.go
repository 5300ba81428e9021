package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

// catchupDays is how far back the catch-up pass recomputes. Three days
// covers late-arriving news scores and price corrections without
// rewriting deep history every run.
const catchupDays = 3

// MetricsCatchupJob recomputes the trailing days for every configured
// ticker. Recomputation is idempotent, so overlapping with the nightly
// job is harmless.
type MetricsCatchupJob struct {
	computer contracts.MetricsComputer
	config   *config.Config
	logger   *logger.Logger
}

// NewMetricsCatchupJob creates a new metrics catch-up job
func NewMetricsCatchupJob(computer contracts.MetricsComputer, cfg *config.Config, log *logger.Logger) *MetricsCatchupJob {
	return &MetricsCatchupJob{
		computer: computer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *MetricsCatchupJob) Name() string {
	return "metrics_catchup"
}

// Schedule returns the cron schedule (every 6 hours, with seconds)
func (j *MetricsCatchupJob) Schedule() string {
	return "0 0 */6 * * *"
}

// Run recomputes the last catchupDays days for each configured ticker
func (j *MetricsCatchupJob) Run(ctx context.Context) error {
	now := time.Now().In(j.config.Pipeline.Timezone)

	j.logger.WithFields(map[string]interface{}{
		"days":    catchupDays,
		"tickers": len(j.config.Pipeline.Tickers),
	}).Info("Starting metrics catch-up")

	var failed int
	for _, ticker := range j.config.Pipeline.Tickers {
		for back := 1; back <= catchupDays; back++ {
			date := now.AddDate(0, 0, -back)
			if _, err := j.computer.Compute(ctx, ticker, date); err != nil {
				failed++
				j.logger.WithError(err).WithFields(map[string]interface{}{
					"ticker": ticker,
					"date":   date.Format("2006-01-02"),
				}).Error("Catch-up computation failed")
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("metrics catch-up failed for %d runs", failed)
	}

	j.logger.Info("Metrics catch-up completed successfully")
	return nil
}
