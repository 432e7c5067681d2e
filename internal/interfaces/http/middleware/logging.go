package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
)

// RequestLogging logs one line per request: method, path, status, duration,
// response size, and request ID. Server errors log at Error, client errors at
// Warn. Paths in skip (health probes, metrics scrapes) are not logged.
func RequestLogging(log logging.Logger, skip ...string) gin.HandlerFunc {
	skipSet := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipSet[p] = true
	}

	return func(c *gin.Context) {
		if skipSet[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		c.Next()

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("duration", time.Since(start)),
			logging.Int("bytes", c.Writer.Size()),
			logging.String("request_id", GetRequestID(c)),
		}

		switch {
		case status >= 500:
			log.Error("http request completed", fields...)
		case status >= 400:
			log.Warn("http request completed", fields...)
		default:
			log.Info("http request completed", fields...)
		}
	}
}
