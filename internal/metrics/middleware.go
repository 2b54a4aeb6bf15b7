package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records the duration of each HTTP request against the route
// pattern, so /v1/events/:id aggregates across event IDs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordRequestDuration(c.Request.Context(), requestOperation(c), time.Since(start).Seconds())
	}
}

// requestOperation labels the request by registered route. Unmatched requests
// fall back to the method alone to keep the label cardinality bounded.
func requestOperation(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return c.Request.Method + " " + path
	}
	return c.Request.Method
}
