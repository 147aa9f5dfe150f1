package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/api"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/router"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	// Generation can wait on the LLM for up to LLM_TIMEOUT per attempt.
	writeTimeout = 3 * time.Minute
	idleTimeout  = 2 * time.Minute
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New builds the router and HTTP server. HTTP metrics are registered with
// reg when it is not nil.
func New(cfg *config.Config, deps api.Dependencies, reg prometheus.Registerer, log *zap.Logger) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	var httpMetrics *middleware.HTTPMetrics
	if reg != nil {
		httpMetrics = middleware.NewHTTPMetrics(reg)
	}

	engine := router.SetupRouter(router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        httpMetrics,
		Log:            log,
	}, deps)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		log: log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
