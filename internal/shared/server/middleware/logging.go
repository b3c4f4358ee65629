package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/telemetry"
)

// Logging emits a structured log and request metrics per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveRequest(c.FullPath(), status, latency)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		// Handlers tag the entities they touched.
		for _, key := range []string{"resumeId", "jobSpecId", "questionSetId"} {
			if val, ok := c.Get(key); ok {
				fields[key] = val
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
