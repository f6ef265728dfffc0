package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	UserIDHeader    = "X-User-ID"
)

// resolveRequestID reuses the caller's id when present so logs can be
// correlated across services.
func resolveRequestID(c *gin.Context) string {
	rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
	if rid == "" {
		rid = uuid.New().String()
	}
	return rid
}
