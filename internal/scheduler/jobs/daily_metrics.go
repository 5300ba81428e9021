package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

// DailyMetricsJob computes yesterday's metrics for every configured ticker
// ⭐ SSOT: the nightly metrics schedule lives in this job only
type DailyMetricsJob struct {
	computer contracts.MetricsComputer
	config   *config.Config
	logger   *logger.Logger
}

// NewDailyMetricsJob creates a new daily metrics job
func NewDailyMetricsJob(computer contracts.MetricsComputer, cfg *config.Config, log *logger.Logger) *DailyMetricsJob {
	return &DailyMetricsJob{
		computer: computer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *DailyMetricsJob) Name() string {
	return "daily_metrics"
}

// Schedule returns the cron schedule (every day at 2 AM, with seconds).
// Runs after the overnight ingestion window so the day's news and
// prices are in place.
func (j *DailyMetricsJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run computes yesterday's metric row for each configured ticker.
// Tickers are independent: one failing does not stop the rest.
func (j *DailyMetricsJob) Run(ctx context.Context) error {
	yesterday := time.Now().In(j.config.Pipeline.Timezone).AddDate(0, 0, -1)

	j.logger.WithFields(map[string]interface{}{
		"date":    yesterday.Format("2006-01-02"),
		"tickers": len(j.config.Pipeline.Tickers),
	}).Info("Starting daily metrics computation")

	var failed int
	for _, ticker := range j.config.Pipeline.Tickers {
		if _, err := j.computer.Compute(ctx, ticker, yesterday); err != nil {
			failed++
			j.logger.WithError(err).WithField("ticker", ticker).Error("Daily metrics computation failed")
		}
	}

	if failed > 0 {
		return fmt.Errorf("daily metrics failed for %d of %d tickers", failed, len(j.config.Pipeline.Tickers))
	}

	j.logger.Info("Daily metrics computation completed successfully")
	return nil
}
