package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key the response envelope reads.
	RequestIDKey    = "RequestID"
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id, reusing a well-formed incoming
// X-Request-ID so traces survive a proxy hop.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
