package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/middleware"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
)

// QuestionController handles the question bank
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions lists questions
// @Summary List questions
// @Description Newest first. search matches the question text, answers and topics in both languages.
// @Tags questions
// @Produce json
// @Param subject_id query int false "Subject ID"
// @Param difficulty query string false "Difficulty" Enums(easy, medium, hard)
// @Param search query string false "Free text"
// @Success 200 {object} dto.APIResponse{data=[]models.Question}
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var filter models.QuestionFilter

	subjectID, ok := helpers.ParseOptionalInt64Param(ctx, "subject_id")
	if !ok {
		badQuery(ctx, "subject_id", "subject_id must be a number")
		return
	}
	filter.SubjectID = subjectID

	if raw := strings.TrimSpace(ctx.Query("difficulty")); raw != "" {
		d := models.Difficulty(strings.ToLower(raw))
		switch d {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
			filter.Difficulty = &d
		default:
			badQuery(ctx, "difficulty", "difficulty must be one of: easy medium hard")
			return
		}
	}
	filter.Search = strings.TrimSpace(ctx.Query("search"))

	questions, err := c.questionService.ListQuestions(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// GetQuestion returns one question
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=models.Question}
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Question")
	if !ok {
		return
	}
	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(question))
}

// CreateQuestion adds a question with optional images
// @Summary Create question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param subject_id formData int false "Subject ID"
// @Param question_text_ar formData string true "Arabic question"
// @Param question_text_en formData string true "English question"
// @Param answer_text_ar formData string false "Arabic answer"
// @Param answer_text_en formData string false "English answer"
// @Param difficulty formData string false "Difficulty"
// @Param image formData file false "Question image"
// @Param answer_image formData file false "Answer image"
// @Success 201 {object} dto.APIResponse{data=models.Question}
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	req, images, ok := bindQuestionForm(ctx)
	if !ok {
		return
	}
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), req, images, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question))
}

// UpdateQuestion replaces a question
// @Summary Update question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question_text_ar formData string true "Arabic question"
// @Param question_text_en formData string true "English question"
// @Param remove_image formData bool false "Drop the stored question image"
// @Param remove_answer_image formData bool false "Drop the stored answer image"
// @Param image formData file false "Question image"
// @Param answer_image formData file false "Answer image"
// @Success 200 {object} dto.APIResponse{data=models.Question}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Question")
	if !ok {
		return
	}
	req, images, ok := bindQuestionForm(ctx)
	if !ok {
		return
	}
	question, err := c.questionService.UpdateQuestion(ctx.Request.Context(), id, req, images)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(question))
}

// DeleteQuestion deletes a question and its images
// @Summary Delete question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Question")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted successfully"))
}

func bindQuestionForm(ctx *gin.Context) (dto.QuestionRequest, services.QuestionImages, bool) {
	var req dto.QuestionRequest
	var images services.QuestionImages
	if !middleware.BindForm(ctx, &req) {
		return req, images, false
	}
	var ok bool
	if images.Image, ok = optionalFile(ctx, "image"); !ok {
		return req, images, false
	}
	if images.AnswerImage, ok = optionalFile(ctx, "answer_image"); !ok {
		return req, images, false
	}
	return req, images, true
}
