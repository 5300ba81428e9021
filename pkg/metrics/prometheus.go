package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ⭐ SSOT: Prometheus metric definitions live here and nowhere else

var (
	// Pipeline metrics
	ComputeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerpulse_compute_runs_total",
			Help: "Total number of daily metric compute runs",
		},
		[]string{"ticker", "status"}, // status: success|error
	)

	ComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tickerpulse_compute_duration_seconds",
			Help:    "Duration of one (ticker, date) compute run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"ticker"},
	)

	// Data quality metrics
	DataAnomalies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerpulse_data_anomalies_total",
			Help: "Data quality anomalies observed while computing metrics",
		},
		[]string{"ticker", "kind"}, // kind: zero_base_price|...
	)

	AbsentFields = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerpulse_absent_fields_total",
			Help: "Metric fields left absent, by field and reason",
		},
		[]string{"field", "reason"}, // reason: no_data|degenerate|insufficient_pairs
	)

	// Job metrics
	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerpulse_job_runs_total",
			Help: "Total number of scheduled job executions",
		},
		[]string{"job", "status"}, // status: success|error
	)

	JobLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tickerpulse_job_last_run_timestamp",
			Help: "Unix timestamp of the last job execution",
		},
		[]string{"job"},
	)
)

// Register registers all metrics with the default registry.
// Call once from main; MustRegister panics on duplicate registration.
func Register() {
	prometheus.MustRegister(
		ComputeRuns,
		ComputeDuration,
		DataAnomalies,
		AbsentFields,
		JobRuns,
		JobLastRun,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts a standalone metrics server on the given port.
// Runs in the calling goroutine; callers wrap it in `go`.
func Serve(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}

// ObserveCompute records one compute run outcome with its duration
func ObserveCompute(ticker string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ComputeRuns.WithLabelValues(ticker, status).Inc()
	ComputeDuration.WithLabelValues(ticker).Observe(time.Since(start).Seconds())
}
