package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP status codes and the standard
// error envelope. Server errors are logged; their detail is only echoed in debug mode.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classify(err)

	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Code != "" {
		code = dto.ErrorCode(ce.Code)
	}
	errorDetail := dto.NewErrorDetail(code, message)
	if ce != nil && ce.Details != nil {
		errorDetail = errorDetail.WithDetails(ce.Details)
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		if gin.Mode() == gin.DebugMode {
			errorDetail = errorDetail.WithDebugInfo("%v", err)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
}

func classify(err error) (int, dto.ErrorCode, string) {
	public := func(fallback string) string {
		if msg, ok := apperrors.PublicMessage(err); ok {
			return msg
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, public("Not found")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict, public("Conflict")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, public("Validation failed")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, public("Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, public("Permission denied")
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	}
}
