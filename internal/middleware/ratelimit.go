package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockstats/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// Global in-memory store for rate limiting.
// NOTE: a multi-instance deployment needs a shared store instead of this map.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	lastSweep       time.Time
	rateLimiterLock sync.Mutex
)

// sweepExpired drops clients whose window closed, at most once per window.
// Callers must hold rateLimiterLock.
func sweepExpired(now time.Time) {
	if now.Sub(lastSweep) <= window {
		return
	}
	for ip, cl := range clients {
		if now.Sub(cl.windowStart) > window {
			delete(clients, ip)
		}
	}
	lastSweep = now
}

// SetRateLimit overrides the number of requests a client IP may issue per window.
// Values <= 0 are ignored.
func SetRateLimit(perWindow int) {
	if perWindow <= 0 {
		return
	}
	rateLimiterLock.Lock()
	limit = perWindow
	rateLimiterLock.Unlock()
}

// RateLimiter is a simple in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window` (default: 60 requests per 1 minute).
//   - Identifies clients by their IP address.
//   - If limit exceeded, returns HTTP 429 Too Many Requests with a dto.ErrorResponse body.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter())
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		sweepExpired(now)
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.windowStart) > window {
			cl = &client{windowStart: now}
			clients[ip] = cl
		}
		cl.count++
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("Rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
