package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eee-uofk/coursehub/internal/app/controllers"
	"github.com/eee-uofk/coursehub/internal/middleware"
	"github.com/eee-uofk/coursehub/internal/pkg/auth"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub"})
	SetupRouter(router, Controllers{
		Auth:         controllers.NewAuthController(nil),
		Subject:      controllers.NewSubjectController(nil),
		Resource:     controllers.NewResourceController(nil, nil),
		Question:     controllers.NewQuestionController(nil),
		Announcement: controllers.NewAnnouncementController(nil, nil),
		Statistics:   controllers.NewStatisticsController(nil),
		Health:       controllers.NewHealthController(nil),
	}, middleware.NewAuthMiddleware(jwtService))
	return router
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	router := newTestRouter()

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/health",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/subjects/:id",
		"GET /api/v1/resources/latest",
		"PUT /api/v1/resources/order",
		"POST /api/v1/resources/:id/move",
		"POST /api/v1/announcements/:id/reactions",
		"POST /api/v1/statistics/sync",
		"PUT /api/v1/statistics/subject/:id",
		"GET /api/v1/statistics/overall",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/subjects"},
		{http.MethodDelete, "/api/v1/resources/3"},
		{http.MethodPut, "/api/v1/resources/order"},
		{http.MethodPost, "/api/v1/statistics/sync"},
		{http.MethodPut, "/api/v1/statistics/subject/1"},
		{http.MethodGet, "/api/v1/auth/me"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}
