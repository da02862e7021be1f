package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/services"
)

// HealthController reports database health
type HealthController struct {
	healthService services.HealthService
}

// NewHealthController creates a new HealthController
func NewHealthController(healthService services.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// Check probes every table
// @Summary Database health
// @Description Row counts per table. Responds 503 when any table or required column is missing.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	resp := c.healthService.Check(ctx.Request.Context())
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}
