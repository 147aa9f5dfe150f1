package main

import (
	"log"

	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/database"
	"github.com/pageza/pikasmart/backend/internal/logger"
	"go.uber.org/zap"
)

// migrate applies the schema without starting the API, for deploy pipelines
// that run migrations as a separate step.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("failed to get sql handle", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(db, zlog); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	zlog.Info("migrations applied")
}
