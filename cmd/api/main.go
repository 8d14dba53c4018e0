package main

import (
	"fmt"

	"audittrail/internal/app"
	"audittrail/internal/config"
	"audittrail/internal/database"
	"audittrail/internal/logger"
)

// @title                      Audit Trail API
// @version                    1.0
// @description                Customer, order and API client management with a per-entity audit trail.
// @host                       localhost:8080
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	application, err := app.New(dbManager.DB(), app.Options{JWTSecret: []byte(cfg.JWTSecret)})
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	log.Infof("Starting audit trail API on port %s", cfg.Port)
	return application.Router.Run(":" + cfg.Port)
}
