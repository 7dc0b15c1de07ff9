package middleware

import (
	"strconv"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics collects HTTP request metrics
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		startTime := time.Now()
		c.Next()

		duration := time.Since(startTime).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestCounter.WithLabelValues(status, method, path).Inc()
		metrics.RequestDuration.WithLabelValues(status, method, path).Observe(duration)
	}
}
