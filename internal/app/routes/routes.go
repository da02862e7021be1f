package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eee-uofk/coursehub/internal/app/controllers"
	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/middleware"
)

// Controllers groups every HTTP handler set the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Subject      *controllers.SubjectController
	Resource     *controllers.ResourceController
	Question     *controllers.QuestionController
	Announcement *controllers.AnnouncementController
	Statistics   *controllers.StatisticsController
	Health       *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", c.Health.Check)

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
	}

	subjects := v1.Group("/subjects")
	{
		subjects.GET("", c.Subject.ListSubjects)
		subjects.GET("/:id", c.Subject.GetSubject)
	}

	resources := v1.Group("/resources")
	{
		resources.GET("", c.Resource.ListResources)
		resources.GET("/latest", c.Resource.LatestResources)
		resources.GET("/:id", c.Resource.GetResource)
	}

	questions := v1.Group("/questions")
	{
		questions.GET("", c.Question.ListQuestions)
		questions.GET("/:id", c.Question.GetQuestion)
	}

	announcements := v1.Group("/announcements")
	{
		announcements.GET("", c.Announcement.ListAnnouncements)
		announcements.GET("/:id", c.Announcement.GetAnnouncement)
		announcements.GET("/:id/reactions", c.Announcement.GetReactions)
		// Reactions are anonymous
		announcements.POST("/:id/reactions", c.Announcement.React)
	}

	statistics := v1.Group("/statistics")
	{
		statistics.GET("", c.Statistics.ListStatistics)
		statistics.GET("/overall", c.Statistics.GetOverallStatistics)
		statistics.GET("/subject/:id", c.Statistics.GetSubjectStatistics)
	}

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.POST("/subjects", c.Subject.CreateSubject)
		admin.PUT("/subjects/:id", c.Subject.UpdateSubject)
		admin.DELETE("/subjects/:id", c.Subject.DeleteSubject)

		admin.POST("/resources", c.Resource.CreateResource)
		admin.PUT("/resources/order", c.Resource.UpdateResourceOrder)
		admin.PUT("/resources/:id", c.Resource.UpdateResource)
		admin.DELETE("/resources/:id", c.Resource.DeleteResource)
		admin.POST("/resources/:id/move", c.Resource.MoveResource)

		admin.POST("/questions", c.Question.CreateQuestion)
		admin.PUT("/questions/:id", c.Question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.Question.DeleteQuestion)

		admin.POST("/announcements", c.Announcement.CreateAnnouncement)
		admin.PUT("/announcements/:id", c.Announcement.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", c.Announcement.DeleteAnnouncement)

		admin.POST("/statistics/sync", c.Statistics.SyncStatistics)
		admin.PUT("/statistics/subject/:id", c.Statistics.UpdateSubjectStatistics)
	}
}
