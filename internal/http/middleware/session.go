package middleware

import (
	"strings"

	"raildesk/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "session_id"

// Session resolves the desk session from X-Session-ID. A single cashier UI
// never sends the header and lands on the default desk.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.Request.Header.Get("X-Session-ID"))
		if sid == "" {
			sid = services.DefaultSessionID
		}
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// GetSessionID extracts the desk session id from gin context.
func GetSessionID(c *gin.Context) string {
	if c == nil {
		return services.DefaultSessionID
	}
	if v, ok := c.Get(sessionIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return services.DefaultSessionID
}
