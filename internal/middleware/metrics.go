package middleware

import (
	"strconv"
	"time"

	"github.com/fenixfl1/CompuPay/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics records in-flight requests, counts and latencies per route
// template. Unmatched routes share the "unmatched" label.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		observability.HTTPInFlight.Inc()
		defer observability.HTTPInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		observability.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
