package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/procurelens/ProcureLens/internal/analysis"
	appanalysis "github.com/procurelens/ProcureLens/internal/application/analysis"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
	"github.com/procurelens/ProcureLens/internal/interfaces/http/handlers"
)

func newTestRouterConfig() RouterConfig {
	log := logging.NewNopLogger()
	reg := promclient.NewRegistry()
	metrics := prometheus.NewMetrics(reg)

	svc := appanalysis.NewService(engine.NewEngine(nil, log), nil, nil, nil, metrics, log)
	return RouterConfig{
		Mode:     "test",
		Analysis: handlers.NewAnalysisHandler(svc, log),
		Health:   handlers.NewHealthHandler(log, nil),
		Metrics:  metrics,
		Gatherer: reg,
		Logger:   log,
	}
}

func TestNewRouter_Health(t *testing.T) {
	r := NewRouter(newTestRouterConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	r := NewRouter(newTestRouterConfig())

	// Drive one API request so request metrics exist, then scrape.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "procurelens_http_requests_total")
}

func TestNewRouter_RequestIDOnResponses(t *testing.T) {
	r := NewRouter(newTestRouterConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
