package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/tickerpulse/internal/api/handlers"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/logger"
)

func testRouter() http.Handler {
	cfg := &config.Config{
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "json",
		Pipeline: config.PipelineConfig{
			Tickers: []string{"AAPL", "MSFT", "TSLA", "NVDA"},
		},
	}
	// nil builder/computer: the routes exercised here never reach them
	h := handlers.NewMetricsHandler(nil, nil, cfg, logger.New(cfg))
	return NewRouter(h, logger.New(cfg))
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimitMiddleware(rate.NewLimiter(0, 2))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_RateLimitOnlyThrottlesCompute(t *testing.T) {
	router := testRouter()

	// Reads stay unthrottled well past the compute bucket's burst of 40
	for i := 0; i < 60; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickers", nil))
		require.Equal(t, http.StatusOK, rec.Code, "read request %d", i)
	}

	// The mutation route shares the token bucket: past the burst, 429
	var rejected, badRequest int
	for i := 0; i < 60; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/metrics/compute", strings.NewReader(`{`))
		router.ServeHTTP(rec, req)
		switch rec.Code {
		case http.StatusTooManyRequests:
			rejected++
		case http.StatusBadRequest:
			badRequest++
		}
	}
	assert.Greater(t, rejected, 0, "compute trigger must hit the rate limit")
	assert.Greater(t, badRequest, 0, "requests inside the burst reach the handler")
}

func TestRouter_HealthCheck(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
