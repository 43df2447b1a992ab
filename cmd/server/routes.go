package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/middleware"
	"github.com/mvaldez/projecttracker/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	// Rate limiter for the login endpoint
	loginLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "projecttracker"})
	})

	// Root-level routes compatible with the SPA's json-server dataService
	r.GET("/projects", svc.projectHandler.ListCompat)
	r.POST("/projects", svc.projectHandler.CreateCompat)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
			auth.GET("/options", svc.authHandler.GetOptions)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.PUT("/auth/profile", svc.authHandler.UpdateProfile)

			// Dashboard
			protected.GET("/dashboard/stats", svc.dashboardHandler.GetStats)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.GET("/projects/:id/display", svc.projectHandler.GetDisplay)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)

			// Settings
			protected.GET("/settings/preferences", svc.settingsHandler.GetPreferences)
			protected.PUT("/settings/preferences", svc.settingsHandler.UpdatePreferences)
			protected.POST("/settings/theme/cycle", svc.settingsHandler.CycleTheme)
			protected.POST("/settings/font/increase", svc.settingsHandler.IncreaseFontSize)
			protected.POST("/settings/font/decrease", svc.settingsHandler.DecreaseFontSize)

			// Activity
			protected.GET("/activity", svc.activityHandler.List)
		}
	}
}
