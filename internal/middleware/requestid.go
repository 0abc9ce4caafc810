package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "request_id"
	// RequestIDHeader carries the id in both directions.
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id that is echoed in the
// X-Request-ID response header and stored under RequestIDKey.
//
// An inbound X-Request-ID is kept when it parses as a UUID so that a caller
// can correlate its own logs; anything else is replaced by a fresh v4 UUID.
//
//	router.Use(middleware.RequestID())
//	...
//	rid := c.GetString(middleware.RequestIDKey)
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
