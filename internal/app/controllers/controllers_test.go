package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/middleware"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidatorTagNames()
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(7))
		c.Next()
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, fileField, fileName string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeAPI(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSubjectController(t *testing.T) {
	svc := &stubSubjectService{subjects: []models.SubjectSummary{{}}}
	c := NewSubjectController(svc)
	r := newRouter()
	r.GET("/subjects", c.ListSubjects)
	r.GET("/subjects/:id", c.GetSubject)
	r.POST("/subjects", c.CreateSubject)
	r.DELETE("/subjects/:id", c.DeleteSubject)

	t.Run("list", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/subjects", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeAPI(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["data"], 1)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/subjects/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id", decodeErr(t, rec).Error.Field)
	})

	t.Run("create reports missing field by json name", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/subjects", map[string]interface{}{"name_ar": "x", "code": "EGS1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name_en", decodeErr(t, rec).Error.Field)
	})

	t.Run("create", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/subjects", dto.SubjectRequest{NameAr: "x", NameEn: "Calculus", Code: "egs11101"})
		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.created)
		assert.Equal(t, "egs11101", svc.created.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc.err = apperrors.ErrSubjectNotFound
		defer func() { svc.err = nil }()
		rec := doJSON(r, http.MethodGet, "/subjects/3", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete with content", func(t *testing.T) {
		svc.err = apperrors.ErrSubjectHasContent
		defer func() { svc.err = nil }()
		rec := doJSON(r, http.MethodDelete, "/subjects/3", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, dto.ErrorCodeConflict, decodeErr(t, rec).Error.Code)
	})
}

func TestResourceController(t *testing.T) {
	svc := &stubResourceService{resources: []models.Resource{}}
	ordering := &stubOrderingService{}
	c := NewResourceController(svc, ordering)
	r := newRouter()
	r.GET("/resources", c.ListResources)
	r.GET("/resources/latest", c.LatestResources)
	r.POST("/resources", c.CreateResource)
	r.PUT("/resources/order", c.UpdateResourceOrder)
	r.POST("/resources/:id/move", c.MoveResource)

	t.Run("list normalises legacy type", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/resources?subject_id=4&type=important_questions", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.filter.SubjectID)
		assert.Equal(t, int64(4), *svc.filter.SubjectID)
		require.NotNil(t, svc.filter.Type)
		assert.Equal(t, models.ResourceTypeImportantQuestion, *svc.filter.Type)
	})

	t.Run("list rejects unknown type", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/resources?type=video", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list rejects non numeric subject", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/resources?subject_id=x", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("latest limits", func(t *testing.T) {
		doJSON(r, http.MethodGet, "/resources/latest", nil)
		assert.Equal(t, defaultLatestLimit, svc.limit)
		doJSON(r, http.MethodGet, "/resources/latest?limit=500", nil)
		assert.Equal(t, maxLatestLimit, svc.limit)
	})

	fields := map[string]string{"subject_id": "1", "type": "lecture", "title_ar": "محاضرة", "title_en": "Lecture 1"}

	t.Run("create with file", func(t *testing.T) {
		rec := doMultipart(t, r, http.MethodPost, "/resources", fields, "file", "notes.pdf")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NotNil(t, svc.file)
		assert.Equal(t, "notes.pdf", svc.file.Filename)
		require.NotNil(t, svc.addedBy)
		assert.Equal(t, int64(7), *svc.addedBy)
	})

	t.Run("create without file", func(t *testing.T) {
		rec := doMultipart(t, r, http.MethodPost, "/resources", fields, "", "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Nil(t, svc.file)
	})

	t.Run("create rejects bad type", func(t *testing.T) {
		bad := map[string]string{"subject_id": "1", "type": "video", "title_ar": "a", "title_en": "b"}
		rec := doMultipart(t, r, http.MethodPost, "/resources", bad, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "type", decodeErr(t, rec).Error.Field)
	})

	t.Run("order accepts zero index", func(t *testing.T) {
		rec := doJSON(r, http.MethodPut, "/resources/order", map[string]interface{}{
			"orders": []map[string]interface{}{{"id": 10, "order_index": 0}, {"id": 11, "order_index": 1}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Len(t, ordering.items, 2)
		assert.Equal(t, 0, *ordering.items[0].OrderIndex)
	})

	t.Run("order requires items", func(t *testing.T) {
		rec := doJSON(r, http.MethodPut, "/resources/order", map[string]interface{}{"orders": []interface{}{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("move", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/resources/10/move", dto.MoveResourceRequest{Direction: "down"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "down", ordering.direction)

		rec = doJSON(r, http.MethodPost, "/resources/10/move", dto.MoveResourceRequest{Direction: "left"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQuestionController(t *testing.T) {
	svc := &stubQuestionService{}
	c := NewQuestionController(svc)
	r := newRouter()
	r.GET("/questions", c.ListQuestions)
	r.POST("/questions", c.CreateQuestion)

	rec := doJSON(r, http.MethodGet, "/questions?difficulty=HARD&search=%20limits%20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Difficulty)
	assert.Equal(t, models.DifficultyHard, *svc.filter.Difficulty)
	assert.Equal(t, "limits", svc.filter.Search)

	rec = doJSON(r, http.MethodGet, "/questions?difficulty=extreme", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doMultipart(t, r, http.MethodPost, "/questions",
		map[string]string{"question_text_ar": "س", "question_text_en": "Q"}, "answer_image", "a.png")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, svc.images.Image)
	require.NotNil(t, svc.images.AnswerImage)
	assert.Equal(t, "a.png", svc.images.AnswerImage.Filename)
}

func TestAnnouncementController(t *testing.T) {
	svc := &stubAnnouncementService{}
	reactions := &stubReactionService{}
	c := NewAnnouncementController(svc, reactions)
	r := newRouter()
	r.GET("/announcements", c.ListAnnouncements)
	r.GET("/announcements/:id/reactions", c.GetReactions)
	r.POST("/announcements/:id/reactions", c.React)

	doJSON(r, http.MethodGet, "/announcements", nil)
	assert.True(t, svc.filter.ActiveOnly)
	assert.Nil(t, svc.filter.Type)

	doJSON(r, http.MethodGet, "/announcements?active_only=false&type=exam&limit=3", nil)
	assert.False(t, svc.filter.ActiveOnly)
	require.NotNil(t, svc.filter.Type)
	assert.Equal(t, models.AnnouncementTypeExam, *svc.filter.Type)
	assert.Equal(t, 3, svc.filter.Limit)

	rec := doJSON(r, http.MethodGet, "/announcements?type=party", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodPost, "/announcements/5/reactions", dto.ReactRequest{ReactionType: "love"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ReactionLove, reactions.reacted)

	rec = doJSON(r, http.MethodPost, "/announcements/5/reactions", dto.ReactRequest{ReactionType: "angry"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodGet, "/announcements/5/reactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeAPI(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	reactions.err = apperrors.ErrAnnouncementNotFound
	rec = doJSON(r, http.MethodPost, "/announcements/99/reactions", dto.ReactRequest{ReactionType: "like"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatisticsController(t *testing.T) {
	svc := &stubStatisticsService{
		report:  &dto.SyncReport{Count: 6, Processed: 7, Failed: []dto.SyncFailure{{SubjectID: 3, Error: "boom"}}, Duration: 1500 * time.Millisecond},
		overall: dto.OverallStatistics{TotalSubjects: 7, TotalLectures: 12},
	}
	c := NewStatisticsController(svc)
	r := newRouter()
	r.POST("/statistics/sync", c.SyncStatistics)
	r.GET("/statistics/overall", c.GetOverallStatistics)
	r.PUT("/statistics/subject/:id", c.UpdateSubjectStatistics)

	t.Run("sync", func(t *testing.T) {
		rec := doJSON(r, http.MethodPost, "/statistics/sync", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.SyncStatisticsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 6, resp.Count)
		assert.Equal(t, int64(1500), resp.DurationMs)
		assert.Len(t, resp.Failed, 1)
	})

	t.Run("sync already running", func(t *testing.T) {
		svc.err = apperrors.ErrSyncInProgress
		defer func() { svc.err = nil }()
		rec := doJSON(r, http.MethodPost, "/statistics/sync", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("sync list failure", func(t *testing.T) {
		svc.err = errors.New("connection refused")
		defer func() { svc.err = nil }()
		rec := doJSON(r, http.MethodPost, "/statistics/sync", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("overall is flat camel case", func(t *testing.T) {
		rec := doJSON(r, http.MethodGet, "/statistics/overall", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeAPI(t, rec)
		assert.Equal(t, float64(7), body["totalSubjects"])
		assert.Equal(t, float64(12), body["totalLectures"])
		assert.NotContains(t, body, "data")
	})

	t.Run("update zero fills omitted counters", func(t *testing.T) {
		rec := doJSON(r, http.MethodPut, "/statistics/subject/2", map[string]int{"total_lectures": 4, "total_labs": 2})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, models.StatisticsCounters{TotalLectures: 4, TotalLabs: 2}, svc.counters)
	})

	t.Run("update rejects negative", func(t *testing.T) {
		rec := doJSON(r, http.MethodPut, "/statistics/subject/2", map[string]int{"total_exams": -1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "total_exams", decodeErr(t, rec).Error.Field)
	})
}

func TestAuthController(t *testing.T) {
	svc := &stubAuthService{}
	c := NewAuthController(svc)

	r := gin.New()
	r.POST("/auth/login", c.Login)
	r.GET("/auth/me", c.Me)

	rec := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "admin1", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeAPI(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Bearer", data["token_type"])

	rec = doJSON(r, http.MethodPost, "/auth/login", map[string]string{"username": "admin1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = services.ErrInvalidLogin
	rec = doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "admin1", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", decodeErr(t, rec).Error.Message)

	rec = doJSON(r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthController(t *testing.T) {
	svc := &stubHealthService{resp: dto.HealthResponse{Status: "ok"}}
	c := NewHealthController(svc)
	r := gin.New()
	r.GET("/health", c.Check)

	rec := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.resp = dto.HealthResponse{Status: "error", Tables: []dto.TableHealth{{Table: "resources", Error: "missing columns: file_url"}}}
	rec = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
