package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "TickerPulse - news sentiment vs. price daily metrics",
	Long: `TickerPulse Unified CLI

Computes per-ticker daily metrics from classified financial news and
price snapshots: average sentiment, dominant label, daily return and
the 7-day rolling sentiment/return correlation.

Usage:
  go run ./cmd/pulse [command]

Examples:
  go run ./cmd/pulse api
  go run ./cmd/pulse compute run --ticker AAPL --date 2026-08-25
  go run ./cmd/pulse compute backfill --days 30
  go run ./cmd/pulse scheduler start
  go run ./cmd/pulse test-db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
