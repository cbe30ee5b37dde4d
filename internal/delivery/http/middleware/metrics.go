package middleware

import (
	"strconv"

	"go-portfolio-forms/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests per matched route and status code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
