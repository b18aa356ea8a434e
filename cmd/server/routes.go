package main

import (
	"github.com/gin-gonic/gin"
	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/internal/handlers"
	"github.com/studentcollab/backend/internal/middleware"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "studentcollab"})
	})

	db := models.GetDB()
	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	teamHandler := handlers.NewTeamHandler(db)
	taskHandler := handlers.NewTaskHandler(db)
	fileHandler := handlers.NewFileHandler(db)
	chatHandler := handlers.NewChatHandler(db)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// SSE Events (public route with internal token validation)
		sseHandler := handlers.NewSSEHandler()
		api.GET("/events/board", sseHandler.StreamBoardEvents)

		// Project discovery works for anonymous visitors too; a token just
		// personalizes the ranking.
		browse := api.Group("", middleware.OptionalAuth())
		{
			browse.GET("/projects", projectHandler.List)
			browse.GET("/projects/:id", projectHandler.GetByID)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)

			// Profiles and peer reviews
			protected.PUT("/users/me", userHandler.UpdateProfile)
			protected.PUT("/users/me/avatar", userHandler.UploadAvatar)
			protected.GET("/users/:id", userHandler.GetProfile)
			protected.GET("/users/:id/reviews", userHandler.ListReviews)
			protected.POST("/reviews", userHandler.CreateReview)

			// Projects
			protected.GET("/projects/mine", projectHandler.ListMine)
			protected.GET("/projects/joined", projectHandler.ListJoined)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.PUT("/projects/:id/thumbnail", projectHandler.UploadThumbnail)
			protected.DELETE("/projects/:id", projectHandler.Delete)

			// Team membership
			protected.POST("/projects/:id/join", teamHandler.RequestJoin)
			protected.GET("/projects/:id/team", teamHandler.ListTeam)
			protected.POST("/projects/:id/team/:userId/accept", teamHandler.Accept)
			protected.POST("/projects/:id/team/:userId/reject", teamHandler.Reject)
			protected.DELETE("/projects/:id/team/:userId", teamHandler.RemoveMember)

			// Task board
			protected.GET("/projects/:id/tasks", taskHandler.List)
			protected.POST("/projects/:id/tasks", taskHandler.Create)
			protected.POST("/projects/:id/tasks/generate", taskHandler.GenerateTasks)
			protected.PUT("/tasks/:id/status/:status", taskHandler.UpdateStatus)
			protected.GET("/projects/:id/analytics", taskHandler.Analytics)

			// File sharing
			protected.GET("/projects/:id/files", fileHandler.List)
			protected.POST("/projects/:id/files", fileHandler.Upload)
			protected.GET("/files/:id", fileHandler.Download)
			protected.DELETE("/files/:id", fileHandler.Delete)

			// Project chat
			protected.GET("/projects/:id/messages", chatHandler.List)
			protected.POST("/projects/:id/messages", chatHandler.Send)
		}
	}
}
