package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/middleware"
)

// StatisticsController serves the denormalized subject statistics
type StatisticsController struct {
	statisticsService services.StatisticsService
}

// NewStatisticsController creates a new StatisticsController
func NewStatisticsController(statisticsService services.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

// SyncStatistics recomputes every subject's counters
// @Summary Synchronise statistics
// @Description Recomputes each subject's counters from the resources and questions tables. Failures on individual subjects are reported and do not abort the run.
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SyncStatisticsResponse "Sync finished"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A sync is already running"
// @Failure 500 {object} dto.ErrorResponse "Subjects could not be listed"
// @Router /statistics/sync [post]
func (c *StatisticsController) SyncStatistics(ctx *gin.Context) {
	report, err := c.statisticsService.Sync(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncStatisticsResponse{
		Success:    true,
		Count:      report.Count,
		Processed:  report.Processed,
		Failed:     report.Failed,
		DurationMs: report.Duration.Milliseconds(),
		Timestamp:  time.Now(),
	})
}

// GetOverallStatistics returns totals across all subjects
// @Summary Overall statistics
// @Description Sums every subject's counters; totalSubjects is a live count. Never fails: internal errors yield zeros.
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.OverallStatistics
// @Router /statistics/overall [get]
func (c *StatisticsController) GetOverallStatistics(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.statisticsService.GetOverall(ctx.Request.Context()))
}

// ListStatistics returns each subject with its counters
// @Summary List subject statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SubjectStatisticsView}
// @Failure 500 {object} dto.ErrorResponse
// @Router /statistics [get]
func (c *StatisticsController) ListStatistics(ctx *gin.Context) {
	views, err := c.statisticsService.ListStatistics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(views))
}

// GetSubjectStatistics returns one subject's counters
// @Summary Subject statistics
// @Description Returns the subject's statistics row, or all-zero counters when it has never been synced.
// @Tags statistics
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=models.SubjectStatistics}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /statistics/subject/{id} [get]
func (c *StatisticsController) GetSubjectStatistics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	stats, err := c.statisticsService.GetSubjectStatistics(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// UpdateSubjectStatistics overwrites one subject's counters
// @Summary Override subject statistics
// @Description Full overwrite: any counter omitted from the body is set to 0.
// @Tags statistics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateSubjectStatisticsRequest true "Counters"
// @Success 200 {object} dto.APIResponse{data=models.SubjectStatistics}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /statistics/subject/{id} [put]
func (c *StatisticsController) UpdateSubjectStatistics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	var req dto.UpdateSubjectStatisticsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	stats, err := c.statisticsService.UpdateSubjectStatistics(ctx.Request.Context(), id, req.Counters())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
