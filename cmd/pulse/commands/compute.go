package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerpulse/internal/contracts"
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Run the daily metrics pipeline",
	Long: `Runs the daily metrics pipeline manually.

Subcommands:
  run       - compute one (ticker, date)
  backfill  - recompute a trailing range of days for all tickers

Example:
  go run ./cmd/pulse compute run --ticker AAPL
  go run ./cmd/pulse compute run --ticker AAPL --date 2026-08-25
  go run ./cmd/pulse compute backfill --days 30
  go run ./cmd/pulse compute backfill --ticker MSFT --days 7`,
}

var (
	computeTicker string
	computeDate   string
	backfillDays  int

	computeRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Compute one (ticker, date)",
		Long: `Computes and upserts the daily metric row for one ticker and date.

Recomputation is idempotent: running the same (ticker, date) twice over
unchanged inputs stores the same row.`,
		RunE: runCompute,
	}

	computeBackfillCmd = &cobra.Command{
		Use:   "backfill",
		Short: "Recompute a trailing range of days",
		Long: `Recomputes the last N days for every configured ticker (or one
ticker with --ticker). Days are processed oldest first so each day's
correlation window sees the freshest trailing data.`,
		RunE: runBackfill,
	}
)

func init() {
	rootCmd.AddCommand(computeCmd)
	computeCmd.AddCommand(computeRunCmd)
	computeCmd.AddCommand(computeBackfillCmd)

	computeRunCmd.Flags().StringVar(&computeTicker, "ticker", "", "ticker symbol (required)")
	computeRunCmd.Flags().StringVar(&computeDate, "date", "", "date as YYYY-MM-DD (default: yesterday)")
	computeRunCmd.MarkFlagRequired("ticker")

	computeBackfillCmd.Flags().StringVar(&computeTicker, "ticker", "", "single ticker (default: all configured)")
	computeBackfillCmd.Flags().IntVar(&backfillDays, "days", 0, "days to backfill (default: BACKFILL_DAYS)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	loc := d.cfg.Pipeline.Timezone
	date := time.Now().In(loc).AddDate(0, 0, -1)
	if computeDate != "" {
		date, err = time.ParseInLocation("2006-01-02", computeDate, loc)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", computeDate)
		}
	}

	ticker := strings.ToUpper(computeTicker)

	fmt.Println("=== TickerPulse Compute ===")
	PrintKeyValue("Ticker", ticker, 8)
	PrintKeyValue("Date", date.Format("2006-01-02"), 8)
	PrintSeparator()

	start := time.Now()
	metric, err := d.computer.Compute(context.Background(), ticker, date)
	if err != nil {
		PrintError("Computation failed")
		return err
	}

	printMetric(metric)
	PrintSuccess(fmt.Sprintf("Completed in %.2fs", time.Since(start).Seconds()))
	return nil
}

func runBackfill(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	days := backfillDays
	if days <= 0 {
		days = d.cfg.Pipeline.BackfillDays
	}

	tickers := d.cfg.Pipeline.Tickers
	if computeTicker != "" {
		tickers = []string{strings.ToUpper(computeTicker)}
	}

	fmt.Println("=== TickerPulse Backfill ===")
	PrintKeyValue("Tickers", strings.Join(tickers, ", "), 8)
	PrintKeyValue("Days", fmt.Sprintf("%d", days), 8)
	PrintSeparator()

	loc := d.cfg.Pipeline.Timezone
	now := time.Now().In(loc)
	start := time.Now()

	var done, failed int
	total := len(tickers) * days

	// Oldest first so later days correlate against fresh trailing rows
	for back := days; back >= 1; back-- {
		date := now.AddDate(0, 0, -back)
		for _, ticker := range tickers {
			if _, err := d.computer.Compute(context.Background(), ticker, date); err != nil {
				failed++
				PrintError(fmt.Sprintf("%s %s: %v", ticker, date.Format("2006-01-02"), err))
				continue
			}
			done++
		}
		fmt.Printf("[Backfill] %s done [%d/%d]\n", date.Format("2006-01-02"), done+failed, total)
	}

	PrintSeparator()
	if failed > 0 {
		PrintError(fmt.Sprintf("%d of %d runs failed", failed, total))
		return fmt.Errorf("backfill incomplete: %d failures", failed)
	}

	PrintSuccess(fmt.Sprintf("Backfilled %d rows in %.2fs", done, time.Since(start).Seconds()))
	return nil
}

// printMetric renders one metric row as a key-value block
func printMetric(m *contracts.DailyTickerMetric) {
	PrintKeyValue("Avg sentiment", formatFloatPtr(m.AvgSentimentScore, "%.4f"), 15)
	PrintKeyValue("Dominant label", formatStrPtr(m.SentimentLabelDominant), 15)
	PrintKeyValue("Daily return", formatFloatPtr(m.DailyReturn, "%.4f"), 15)
	PrintKeyValue("Correlation 7d", formatFloatPtr(m.Correlation7D, "%.4f"), 15)
}

func formatFloatPtr(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func formatStrPtr(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
