package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/shared/server/respond"
	"studykit-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a logged 500 with the standard error
// envelope. The stack goes to telemetry, never to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
