package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func Health(service string, checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{
			"status":  "healthy",
			"service": service,
		}
		code := http.StatusOK
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				status[hc.Name] = "unhealthy"
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			status[hc.Name] = "healthy"
		}
		c.JSON(code, status)
	}
}
