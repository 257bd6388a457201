// Package endpoint provides the operational HTTP endpoints.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/healthverse/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health reports the worst component status. Unhealthy answers 503;
// degraded still answers 200 because consultations keep working on
// fallbacks.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := component.StatusHealthy
		var components []component.Health
		if checker != nil {
			components = checker(c.Request.Context())
		}
		for _, ch := range components {
			switch ch.Status {
			case component.StatusUnhealthy:
				status = component.StatusUnhealthy
			case component.StatusDegraded:
				if status != component.StatusUnhealthy {
					status = component.StatusDegraded
				}
			}
		}

		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
