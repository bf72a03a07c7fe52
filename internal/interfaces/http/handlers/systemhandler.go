package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

type SystemHandler struct {
	checks  map[string]HealthCheck
	version string
	logger  logger.Interface
}

func NewSystemHandler(version string, checks map[string]HealthCheck, logger logger.Interface) *SystemHandler {
	return &SystemHandler{
		checks:  checks,
		version: version,
		logger:  logger,
	}
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Health handles GET /health. Any failing check turns the answer into 503.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warnw("health check failed", "check", name, "error", err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}

	if status != http.StatusOK {
		c.JSON(status, utils.APIResponse{Success: false, Data: resp})
		return
	}
	utils.SuccessResponse(c, status, "", resp)
}
