package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/middleware"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
)

const maxAnnouncementLimit = 100

// AnnouncementController handles the notice board and its reactions
type AnnouncementController struct {
	announcementService services.AnnouncementService
	reactionService     services.ReactionService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService, reactionService services.ReactionService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		reactionService:     reactionService,
	}
}

// ListAnnouncements lists announcements by priority, then newest first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Param active_only query bool false "Only active announcements (default true)"
// @Param type query string false "Announcement type" Enums(general, exam, submission)
// @Param limit query int false "Max items"
// @Success 200 {object} dto.APIResponse{data=[]models.Announcement}
// @Failure 400 {object} dto.ErrorResponse
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	filter := models.AnnouncementFilter{
		ActiveOnly: helpers.ParseBoolParam(ctx, "active_only", true),
		Limit:      helpers.ParseLimitParam(ctx, "limit", 0, maxAnnouncementLimit),
	}
	if raw := ctx.Query("type"); raw != "" {
		t := models.AnnouncementType(raw)
		switch t {
		case models.AnnouncementTypeGeneral, models.AnnouncementTypeExam, models.AnnouncementTypeSubmission:
			filter.Type = &t
		default:
			badQuery(ctx, "type", "type must be one of: general exam submission")
			return
		}
	}

	announcements, err := c.announcementService.ListAnnouncements(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcements))
}

// GetAnnouncement returns one announcement
// @Summary Get announcement
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=models.Announcement}
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Announcement")
	if !ok {
		return
	}
	announcement, err := c.announcementService.GetAnnouncement(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcement))
}

// CreateAnnouncement publishes an announcement
// @Summary Create announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnnouncementRequest true "Announcement"
// @Success 201 {object} dto.APIResponse{data=models.Announcement}
// @Failure 400 {object} dto.ErrorResponse
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.AnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	announcement, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), req, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement))
}

// UpdateAnnouncement replaces an announcement
// @Summary Update announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.AnnouncementRequest true "Announcement"
// @Success 200 {object} dto.APIResponse{data=models.Announcement}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Announcement")
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	announcement, err := c.announcementService.UpdateAnnouncement(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcement))
}

// DeleteAnnouncement deletes an announcement and its reactions
// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Announcement")
	if !ok {
		return
	}
	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Announcement deleted successfully"))
}

// GetReactions returns the reaction counters of an announcement
// @Summary Get reactions
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReactionsResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id}/reactions [get]
func (c *AnnouncementController) GetReactions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Announcement")
	if !ok {
		return
	}
	reactions, err := c.reactionService.GetReactions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reactions))
}

// React increments one reaction counter. No login is required.
// @Summary React to announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param request body dto.ReactRequest true "Reaction"
// @Success 200 {object} dto.APIResponse{data=models.AnnouncementReaction}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id}/reactions [post]
func (c *AnnouncementController) React(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Announcement")
	if !ok {
		return
	}
	var req dto.ReactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	reaction, err := c.reactionService.React(ctx.Request.Context(), id, models.ReactionType(req.ReactionType))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reaction))
}
