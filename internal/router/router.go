package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/api"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"go.uber.org/zap"
)

// Options configures the middleware chain in front of the API routes.
type Options struct {
	AllowedOrigins []string
	// Metrics is optional; nil disables per-route HTTP metrics.
	Metrics *middleware.HTTPMetrics
	Log     *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(opts Options, deps api.Dependencies) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Log == nil {
		deps.Log = log
	}

	router := gin.New()

	// Request ids must exist before recovery logs a panic.
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	api.RegisterRoutes(router, deps)
	return router
}
