package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request. Ticket routes also carry the desk
// session id so a wizard flow can be followed across its mutations; other
// routes log "-" there.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		sid := "-"
		if v, ok := c.Get(sessionIDKey); ok {
			if s, ok := v.(string); ok && s != "" {
				sid = s
			}
		}

		log.Printf("[HTTP] request_id=%s session_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			sid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
