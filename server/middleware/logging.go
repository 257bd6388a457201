package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/healthverse/logger"
)

var quietPaths = map[string]bool{"/health": true, "/info": true}

// RequestLogger logs each request once it completes, at a level chosen by
// status. Health checks are not logged.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := map[string]interface{}{
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  latency.Milliseconds(),
			"client":              c.ClientIP(),
			logger.FieldRequestID: GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			fields[logger.FieldError] = c.Errors.String()
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Info("Request completed", fields)
		}
	}
}
