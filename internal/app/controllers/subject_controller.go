package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/middleware"
)

// SubjectController handles the subject catalogue
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// ListSubjects lists all subjects with their counters
// @Summary List subjects
// @Description Subjects ordered by semester then code, each with its cached statistics counters.
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SubjectSummary}
// @Failure 500 {object} dto.ErrorResponse
// @Router /subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.ListSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects))
}

// GetSubject returns a subject with its statistics and grouped resources
// @Summary Get subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectDetailResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}
	detail, err := c.subjectService.GetSubjectDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// CreateSubject creates a subject
// @Summary Create subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubjectRequest true "Subject"
// @Success 201 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.CreateSubject(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subject))
}

// UpdateSubject replaces a subject
// @Summary Update subject
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.SubjectRequest true "Subject"
// @Success 200 {object} dto.APIResponse{data=models.Subject}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.UpdateSubject(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject))
}

// DeleteSubject deletes a subject that has no resources or questions
// @Summary Delete subject
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Subject still has content"
// @Router /subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}
	if err := c.subjectService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Subject deleted successfully"))
}
