package middleware

import (
	"strconv"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests by route template, so /orders/:orderId is one
// series rather than one per order.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reg.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		reg.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
