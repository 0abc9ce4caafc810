package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockstats/internal/logger"
)

// RequestLogger emits one structured "http_request" event per request once
// the rest of the chain has returned.
//
// Fields: request_id (set by RequestID), method, path, query, status,
// latency_ms, client_ip and the number of errors attached with c.Error.
// Responses with status >= 500 are logged at warn level so that failing
// social or sentiment calls stand out from normal traffic.
//
//	{"level":"info","request_id":"123e4567-...","method":"GET","path":"/api/v1/stats","query":"ticker=XYZ&date=2012-11-01","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		ev := logger.L().Info()
		if status >= 500 {
			ev = logger.L().Warn()
		}
		rid, _ := c.Get(RequestIDKey)
		ev.Str("request_id", toString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Int("errors", len(c.Errors)).
			Msg("http_request")
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
