package main

import (
	"os"

	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/internal/services"
	"github.com/studentcollab/backend/internal/utils"
	"github.com/studentcollab/backend/pkg/logger"
)

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Ensure the upload directory exists before the first file arrives
	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		logger.Fatalf("Failed to create upload directory: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())
}
