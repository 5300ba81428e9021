package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/tickerpulse/internal/contracts"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

// MetricsHandler handles the daily metrics API endpoints
// ⭐ SSOT: metrics API handlers live in this struct only
type MetricsHandler struct {
	builder  contracts.TimeseriesBuilder
	computer contracts.MetricsComputer
	config   *config.Config
	logger   *logger.Logger
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(builder contracts.TimeseriesBuilder, computer contracts.MetricsComputer, cfg *config.Config, log *logger.Logger) *MetricsHandler {
	return &MetricsHandler{
		builder:  builder,
		computer: computer,
		config:   cfg,
		logger:   log,
	}
}

// GetTickers returns the configured ticker universe
// GET /api/tickers
func (h *MetricsHandler) GetTickers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tickers": h.config.Pipeline.Tickers,
	})
}

// GetTimeseries returns the computed daily metrics series for a ticker
// GET /api/ticker/{ticker}/timeseries?days=7
func (h *MetricsHandler) GetTimeseries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	if !h.supported(ticker) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Ticker %s is not supported", ticker))
		return
	}

	// Parse days parameter (default: 7, capped by the builder at 90)
	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		d, err := strconv.Atoi(daysStr)
		if err != nil || d <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = d
	}

	series, err := h.builder.Build(ctx, ticker, days)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"days":   days,
		}).Error("Failed to build timeseries")
		respondError(w, http.StatusInternalServerError, "Failed to build timeseries")
		return
	}

	if len(series.Points) == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("No daily metrics found for ticker %s", ticker))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    series,
	})
}

// supported reports whether the ticker is in the configured universe
func (h *MetricsHandler) supported(ticker string) bool {
	for _, t := range h.config.Pipeline.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// ComputeRequest is the POST body for a manual metric computation
type ComputeRequest struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date,omitempty"` // YYYY-MM-DD, defaults to yesterday
}

// TriggerCompute runs the pipeline for one (ticker, date) on demand
// POST /api/metrics/compute
func (h *MetricsHandler) TriggerCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	loc := h.config.Pipeline.Timezone
	date := time.Now().In(loc).AddDate(0, 0, -1)
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, loc)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	metric, err := h.computer.Compute(ctx, ticker, date)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"date":   date.Format("2006-01-02"),
		}).Error("Manual metric computation failed")
		respondError(w, http.StatusInternalServerError, "Metric computation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    metric,
	})
}
