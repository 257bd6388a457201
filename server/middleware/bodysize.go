package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds a consultation upload (audio plus image).
const DefaultMaxBodySize = 32 << 20

// BodySizeLimit caps the request body at maxSize ("32MB", "512KB").
// Reads past the limit fail with *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	limit := ParseSize(maxSize, DefaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
