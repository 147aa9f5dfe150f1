package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/app"
	"github.com/pageza/pikasmart/backend/internal/logger"
	"github.com/pageza/pikasmart/backend/internal/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if config.IsDevelopment() {
		// A missing .env is fine; the environment may already be populated.
		_ = godotenv.Load()
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()
	application, err := app.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialise application", zap.Error(err))
	}
	defer application.Close()

	srv := server.New(cfg, application.Dependencies(), application.Registry, zlog)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zlog.Error("server error", zap.Error(err))
			return
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
