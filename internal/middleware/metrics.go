package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leaguedesk/standings/internal/metrics"
)

// Metrics returns a middleware that records request counts and latency per
// route template, so league ids do not become label values.
func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
