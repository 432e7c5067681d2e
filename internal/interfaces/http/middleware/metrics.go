package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency per method and route. The route
// label uses the registered pattern, not the raw path, so path parameters do
// not explode the cardinality.
func Metrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
