package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tickerpulse/internal/api"
	"github.com/wonny/tickerpulse/internal/api/handlers"
	"github.com/wonny/tickerpulse/pkg/metrics"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- starts the HTTP API server
- serves the computed per-ticker timeseries
- exposes a manual computation trigger

Endpoints:
  GET  /health                            - Health check
  GET  /api/tickers                       - Configured ticker universe
  GET  /api/ticker/{ticker}/timeseries    - Daily metrics series
  POST /api/metrics/compute               - Trigger one computation

Example:
  go run ./cmd/pulse api
  go run ./cmd/pulse api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TickerPulse API Server ===")

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	// Override port if flag is set
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	d.log.WithFields(map[string]interface{}{
		"port": d.cfg.Port,
		"env":  d.cfg.Env,
	}).Info("Initializing API server")

	// Prometheus endpoint on its own port
	metrics.Register()
	if d.cfg.MetricsEnabled {
		go func() {
			if err := metrics.Serve(d.cfg.MetricsPort); err != nil {
				d.log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	// Wire handler, router, server
	metricsHandler := handlers.NewMetricsHandler(d.builder, d.computer, d.cfg, d.log)
	router := api.NewRouter(metricsHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	d.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/tickers")
	fmt.Println("  GET  /api/ticker/{ticker}/timeseries")
	fmt.Println("  POST /api/metrics/compute")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	d.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
