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

const (
	defaultLatestLimit = 5
	maxLatestLimit     = 50
)

// ResourceController handles course materials and their ordering
type ResourceController struct {
	resourceService services.ResourceService
	orderingService services.OrderingService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, orderingService services.OrderingService) *ResourceController {
	return &ResourceController{resourceService: resourceService, orderingService: orderingService}
}

// ListResources lists resources
// @Summary List resources
// @Description Sorted by order_index ascending (unset last), then newest first.
// @Tags resources
// @Produce json
// @Param subject_id query int false "Subject ID"
// @Param type query string false "Resource type" Enums(lecture, sheet, assignment, exam, reference, important_question)
// @Success 200 {object} dto.APIResponse{data=[]models.Resource}
// @Failure 400 {object} dto.ErrorResponse
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var filter models.ResourceFilter

	subjectID, ok := helpers.ParseOptionalInt64Param(ctx, "subject_id")
	if !ok {
		badQuery(ctx, "subject_id", "subject_id must be a number")
		return
	}
	filter.SubjectID = subjectID

	if raw := ctx.Query("type"); raw != "" {
		t, known := models.ParseResourceType(raw)
		if !known {
			badQuery(ctx, "type", "Unknown resource type")
			return
		}
		filter.Type = &t
	}

	resources, err := c.resourceService.ListResources(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// LatestResources lists the newest resources
// @Summary Latest resources
// @Tags resources
// @Produce json
// @Param limit query int false "Max items (default 5, max 50)"
// @Success 200 {object} dto.APIResponse{data=[]models.Resource}
// @Router /resources/latest [get]
func (c *ResourceController) LatestResources(ctx *gin.Context) {
	limit := helpers.ParseLimitParam(ctx, "limit", defaultLatestLimit, maxLatestLimit)
	resources, err := c.resourceService.LatestResources(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// GetResource returns one resource
// @Summary Get resource
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=models.Resource}
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Resource")
	if !ok {
		return
	}
	resource, err := c.resourceService.GetResource(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// CreateResource uploads a resource
// @Summary Create resource
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param subject_id formData int true "Subject ID"
// @Param type formData string true "Resource type"
// @Param title_ar formData string true "Arabic title"
// @Param title_en formData string true "English title"
// @Param description_ar formData string false "Arabic description"
// @Param description_en formData string false "English description"
// @Param source formData string false "Source URL"
// @Param file_url formData string false "External file URL when no file is uploaded"
// @Param order_index formData int false "Display order"
// @Param file formData file false "File"
// @Success 201 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	var req dto.ResourceRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}
	file, ok := optionalFile(ctx, "file")
	if !ok {
		return
	}

	resource, err := c.resourceService.CreateResource(ctx.Request.Context(), req, file, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// UpdateResource replaces a resource, optionally with a new file
// @Summary Update resource
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param subject_id formData int true "Subject ID"
// @Param type formData string true "Resource type"
// @Param title_ar formData string true "Arabic title"
// @Param title_en formData string true "English title"
// @Param file formData file false "Replacement file"
// @Success 200 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Resource")
	if !ok {
		return
	}
	var req dto.ResourceRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}
	file, ok := optionalFile(ctx, "file")
	if !ok {
		return
	}

	resource, err := c.resourceService.UpdateResource(ctx.Request.Context(), id, req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// DeleteResource deletes a resource and its stored file
// @Summary Delete resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Resource")
	if !ok {
		return
	}
	if err := c.resourceService.DeleteResource(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Resource deleted successfully"))
}

// UpdateResourceOrder applies a batch of order_index assignments
// @Summary Reorder resources
// @Description Each pair is applied independently; failures are listed and do not roll back the others.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateResourceOrderRequest true "Order pairs"
// @Success 200 {object} dto.APIResponse{data=dto.OrderUpdateResult}
// @Failure 400 {object} dto.ErrorResponse
// @Router /resources/order [put]
func (c *ResourceController) UpdateResourceOrder(ctx *gin.Context) {
	var req dto.UpdateResourceOrderRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	result := c.orderingService.ApplyOrder(ctx.Request.Context(), req.Orders)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// MoveResource moves a resource one step up or down within its subject
// @Summary Move resource
// @Description Moving the first resource up or the last one down changes nothing.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body dto.MoveResourceRequest true "Direction"
// @Success 200 {object} dto.APIResponse{data=dto.OrderUpdateResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id}/move [post]
func (c *ResourceController) MoveResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Resource")
	if !ok {
		return
	}
	var req dto.MoveResourceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	result, err := c.orderingService.MoveResource(ctx.Request.Context(), id, req.Direction)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
