package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
)

const readinessCheckTimeout = 2 * time.Second

// Pinger checks one backing dependency.
type Pinger func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	logger logging.Logger
	checks map[string]Pinger
}

// NewHealthHandler builds the handler. checks maps a dependency name to its
// connectivity probe; readiness fails when any probe fails.
func NewHealthHandler(log logging.Logger, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{logger: log, checks: checks}
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz: every registered dependency must respond.
func (h *HealthHandler) Readiness(c *gin.Context) {
	failed := map[string]string{}
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			failed[name] = err.Error()
			h.logger.Warn("readiness check failed",
				logging.String("dependency", name), logging.Err(err))
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "failed": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
