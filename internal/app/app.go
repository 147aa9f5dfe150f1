package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/api"
	"github.com/pageza/pikasmart/backend/internal/database"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the process-wide dependencies shared by the API server and the
// command line tools.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry

	Auth        *service.AuthService
	Recipes     *service.RecipeService
	Collections *service.CollectionService
	Generation  *service.GenerationService
	Generator   *service.ResilientGenerator
}

// New connects to the database (running migrations), the optional Redis
// instance and the configured LLM provider, and builds every service.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			// Generation stays available without the per-client limit.
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			a.Redis = client
		}
	}

	a.Generator, err = NewGenerator(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	transcripts, err := NewTranscriptStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	emailService := service.NewEmailService(service.EmailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	}, log)

	a.Auth = service.NewAuthService(db, service.NewTokenService(cfg.JWTSecret), emailService, cfg.ClientURL, log)
	a.Recipes = service.NewRecipeService(db, service.NewEmbeddingService(), log)
	a.Collections = service.NewCollectionService(db, log)
	a.Generation = service.NewGenerationService(a.Generator, a.Recipes, transcripts, service.NewGenerationMetrics(a.Registry), log)
	return a, nil
}

// NewGenerator builds the client for the configured LLM provider, wrapped
// with timeout, retry, throttling and circuit breaking.
func NewGenerator(cfg *config.Config, log *zap.Logger) (*service.ResilientGenerator, error) {
	httpClient := &http.Client{}

	var client service.Generator
	switch cfg.LLMProvider {
	case "gemini", "":
		client = service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiModel, httpClient)
	case "deepseek":
		client = service.NewChatCompletionClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL, "", httpClient)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}

	log.Info("using LLM provider", zap.String("provider", cfg.LLMProvider))
	return service.NewResilientGenerator(client, service.ResilientConfig{
		Timeout:           cfg.LLMTimeout,
		RequestsPerMinute: cfg.LLMRequestsPerMinute,
	}, log), nil
}

// NewTranscriptStore returns an S3-backed store when a bucket is configured.
func NewTranscriptStore(ctx context.Context, cfg *config.Config) (service.TranscriptStore, error) {
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3: %w", err)
	}
	if s3cfg == nil {
		return service.NopTranscriptStore{}, nil
	}
	return service.NewS3TranscriptStore(s3cfg.Client, s3cfg.BucketName), nil
}

// Dependencies wires the services into the HTTP layer.
func (a *App) Dependencies() api.Dependencies {
	deps := api.Dependencies{
		DB:                a.DB,
		AuthService:       a.Auth,
		RecipeService:     a.Recipes,
		CollectionService: a.Collections,
		GenerationService: a.Generation,
		GeneratorBreaker:  a.Generator.Breaker(),
		Gatherer:          a.Registry,
		SecureCookies:     a.Config.SecureCookies(),
		Log:               a.Log,
	}
	if a.Redis != nil {
		deps.GenerateLimiter = middleware.NewGenerationRateLimiter(a.Redis, a.Config.GenerateLimitPerHour, a.Log)
	}
	return deps
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Warn("failed to close database", zap.Error(err))
		}
	}
}
