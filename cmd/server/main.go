package main

import (
	"log"
	"process_flow_go/config"
	"process_flow_go/db"
	"process_flow_go/handlers"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"process_flow_go/services/jobs"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.Process{},
		&models.Deadline{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := db.EnsureIndexes(db.DB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	protected.Use(middleware.AuditContext())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/me", handlers.GetCurrentUserHandler)

		// Process reads (all roles)
		protected.GET("/processes", handlers.GetProcessesHandler)
		protected.GET("/processes/lookup", handlers.LookupProcessHandler)
		protected.GET("/processes/:id", handlers.GetProcessHandler)

		// Deadline reads (all roles)
		protected.GET("/deadlines", handlers.GetDeadlinesHandler)
		protected.GET("/deadlines/:id", handlers.GetDeadlineHandler)

		// Mutations (admin and lawyer only)
		manage := protected.Group("")
		manage.Use(middleware.RequireRole(models.RoleAdmin, models.RoleLawyer))
		{
			manage.POST("/processes", handlers.CreateProcessHandler)
			manage.PUT("/processes/:id", handlers.UpdateProcessHandler)
			manage.DELETE("/processes/:id", handlers.DeleteProcessHandler)

			manage.POST("/deadlines", handlers.CreateDeadlineHandler)
			manage.PUT("/deadlines/:id", handlers.UpdateDeadlineHandler)
			manage.DELETE("/deadlines/:id", handlers.DeleteDeadlineHandler)

			manage.GET("/processes/import/template", handlers.DownloadImportTemplateHandler)
		}

		// Admin-only routes
		adminRoutes := protected.Group("")
		adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminRoutes.GET("/processes/deleted", handlers.GetDeletedProcessesHandler)
			adminRoutes.GET("/processes/:id/audit", handlers.GetProcessAuditHistoryHandler)
			adminRoutes.GET("/audit-logs", handlers.GetAuditLogsHandler)
			adminRoutes.POST("/processes/import", handlers.ImportProcessesHandler, middleware.ImportRateLimiter.Middleware())
		}
	}

	// Background jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			// Clean up expired sessions
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}

			// Send reminders for deadlines due soon
			jobs.SendDeadlineReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
