package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/chat-relay/internal/api/dto"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	checkTimeout = 2 * time.Second
)

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
	// Optional marks a dependency the relay can serve without, e.g. a fail-open quota store.
	Optional bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall status and the status of every dependency.
// @Description A failing optional dependency reports "degraded" with 200.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy or degraded"
// @Failure 503 {object} dto.HealthResponse "Service unhealthy"
// @Router /api/v1/chat-relay/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string, len(h.checks))
	status := statusHealthy

	for _, check := range h.checks {
		if err := h.run(c.Request.Context(), check); err != nil {
			components[check.Name] = statusUnhealthy
			if !check.Optional {
				status = statusUnhealthy
			} else if status == statusHealthy {
				status = statusDegraded
			}
			continue
		}
		components[check.Name] = statusHealthy
	}

	statusCode := http.StatusOK
	if status == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 while every required dependency is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /api/v1/chat-relay/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	for _, check := range h.checks {
		if check.Optional {
			continue
		}
		if err := h.run(c.Request.Context(), check); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": check.Name + " unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /api/v1/chat-relay/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (h *HealthHandler) run(ctx context.Context, check HealthCheck) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return check.Check(ctx)
}
