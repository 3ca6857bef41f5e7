package app

import (
	"bashaway_backend/internal/config"
	"bashaway_backend/internal/middleware"
	"bashaway_backend/internal/model"
	"bashaway_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/current", c.auth.Current)
		authGroup.PUT("/users/change_password", c.auth.ChangePassword)

		authGroup.GET("/questions", c.question.GetAll)
		authGroup.GET("/questions/:id", c.question.GetByID)

		authGroup.GET("/submissions", c.submission.GetAll)
		authGroup.POST("/submissions", c.submission.Create)

		authGroup.GET("/scores/leaderboard", c.score.Leaderboard)
	}

	// Admin routes
	adminGroup := router.Group("/api")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.GET("/users", c.user.GetAll)
		adminGroup.PUT("/users/score", c.user.UpdateAllScores)
		adminGroup.GET("/users/:id", c.user.GetByID)
		adminGroup.PUT("/users/:id/score", c.user.UpdateScore)

		adminGroup.POST("/questions", c.question.Create)
		adminGroup.PUT("/questions/:id", c.question.Update)
		adminGroup.DELETE("/questions/:id", c.question.Delete)
		adminGroup.POST("/questions/:id/attachment", c.question.UploadAttachment)

		adminGroup.PUT("/submissions/:id/grade", c.submission.Grade)
	}
}
