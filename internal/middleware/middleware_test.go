package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidatorTagNames()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/admin", m.JWTAuth(), m.RoleRequired(string(models.RoleAdmin)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": *CurrentUserID(c)})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub"})
	router := newAuthRouter(jwtService)

	adminToken, _, err := jwtService.GenerateAccessToken(&models.User{ID: 3, Username: "admin1", Role: models.RoleAdmin})
	require.NoError(t, err)
	viewerToken, _, err := jwtService.GenerateAccessToken(&models.User{ID: 4, Username: "viewer", Role: "viewer"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
		{"raw token", adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrSubjectNotFound, http.StatusNotFound, "subject not found"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrSubjectCodeExists), http.StatusConflict, "a subject with this code already exists"},
		{apperrors.NewBadRequestError("title_en is required"), http.StatusBadRequest, "title_en is required"},
		{apperrors.ErrSyncInProgress, http.StatusConflict, "a statistics sync is already running"},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Empty(t, resp.Error.DebugInfo)
		})
	}
}

func TestHandleAPIError_CustomCode(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/resources", nil)

	HandleAPIError(c, apperrors.NewBadRequestError("notes.pdf is too large").WithCode(string(dto.ErrorCodeFileTooLarge)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeFileTooLarge, decodeError(t, rec).Error.Code)
}

func TestBindJSON_ReportsJSONFieldNames(t *testing.T) {
	r := gin.New()
	r.POST("/react", func(c *gin.Context) {
		var req dto.ReactRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/react", strings.NewReader(`{"reaction_type":"angry"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "reaction_type", resp.Error.Field)
	assert.Contains(t, resp.Error.Message, "like love wow sad")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/react", strings.NewReader(`{"reaction_type":"wow"}`)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}
