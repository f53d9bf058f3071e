package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"relove/internal/monitor"
)

// Metrics HTTP metrics middleware. Uses the route template so
// parameterised paths do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		monitor.HTTPRequestTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		monitor.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
