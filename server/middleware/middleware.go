// Package middleware holds the gin middleware stack used by the HealthVerse
// HTTP server.
package middleware

import (
	"strconv"
	"strings"
)

// RequestIDHeader carries the server request id in responses. A value
// sent by the client is only used for log correlation.
const RequestIDHeader = "X-Request-Id"

// Gin context keys set by RequestID.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// ParseSize converts "25MB", "512KB", "1GB" or a plain byte count to bytes.
// Malformed input yields def.
func ParseSize(s string, def int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	mult := int64(1)
	for _, u := range []struct {
		suffix string
		mult   int64
	}{{"GB", 1 << 30}, {"MB", 1 << 20}, {"KB", 1 << 10}} {
		if strings.HasSuffix(s, u.suffix) {
			mult = u.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n * mult
}
