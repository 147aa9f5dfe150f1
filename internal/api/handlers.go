package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the services the HTTP surface is built from.
type Dependencies struct {
	DB                *gorm.DB
	AuthService       service.IAuthService
	RecipeService     service.IRecipeService
	CollectionService service.ICollectionService
	GenerationService service.IGenerationService
	// GenerateLimiter is optional; generation is unlimited without it.
	GenerateLimiter *middleware.RateLimiter
	// GeneratorBreaker is reported by /health when set.
	GeneratorBreaker *service.CircuitBreaker
	// Gatherer backs GET /metrics. Nil skips the endpoint.
	Gatherer      prometheus.Gatherer
	SecureCookies bool
	Log           *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Health check endpoint (no auth required)
	health := NewHealthHandler(deps.DB, deps.GeneratorBreaker, log)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	var generateLimit gin.HandlerFunc
	if deps.GenerateLimiter != nil {
		generateLimit = deps.GenerateLimiter.RateLimitMiddleware()
	} else {
		log.Warn("recipe generation is not rate limited")
	}

	requireSession := middleware.RequireSession(deps.AuthService, log)

	authHandler := NewAuthHandler(deps.AuthService, deps.SecureCookies, log)
	recipeHandler := NewRecipeHandler(deps.RecipeService, deps.CollectionService, deps.GenerationService, generateLimit, log)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, requireSession)
	recipeHandler.RegisterRoutes(v1, requireSession)
}
