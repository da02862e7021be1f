package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 response when invalid
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// optionalFile returns the uploaded file for field, or nil when the part is absent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := ctx.FormFile(field)
	if err == nil {
		return fh, true
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid file upload").
		WithField(field).
		WithDetails(err.Error())
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return nil, false
}

func badQuery(ctx *gin.Context, field, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(field)
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
