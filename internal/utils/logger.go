package utils

import (
	"log"
	"strings"
)

// LogEvent prints standardized log line with module/action/session id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(sessionID, module, action, message string) {
	sid := strings.TrimSpace(sessionID)
	log.Printf("[%s] action=%s session_id=%s msg=%s", strings.ToUpper(module), action, sid, message)
}
