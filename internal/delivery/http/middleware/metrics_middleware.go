package middleware

import (
	"strconv"
	"time"

	"job-catalog-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency keyed by route template, so
// /jobs/1 and /jobs/2 share a series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HttpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
