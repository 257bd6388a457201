package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/healthverse/logger"
)

// maxCorrelationIDLen caps the client id copied into logs.
const maxCorrelationIDLen = 128

// RequestID assigns every request a fresh server-side UUID. The id names
// the request's storage workspace, so a client X-Request-Id never replaces
// it; the client value is kept as a correlation id for logs only.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		ctx := logger.ContextWithRequestID(c.Request.Context(), id)
		if corr := correlationID(c.GetHeader(RequestIDHeader)); corr != "" {
			c.Set(ContextKeyCorrelationID, corr)
			ctx = logger.ContextWithCorrelationID(ctx, corr)
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the client supplied X-Request-Id, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// correlationID drops control characters and truncates long values.
func correlationID(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		out = append(out, r)
		if len(out) == maxCorrelationIDLen {
			break
		}
	}
	return string(out)
}
