package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/database"
	"github.com/pageza/pikasmart/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports whether the API can reach its database, along with
// the generator circuit state when one is wired. An open circuit degrades
// generation only, so it never marks the API unhealthy.
type HealthHandler struct {
	db      *gorm.DB
	breaker *service.CircuitBreaker
	log     *zap.Logger
}

func NewHealthHandler(db *gorm.DB, breaker *service.CircuitBreaker, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, breaker: breaker, log: log}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": "Database unavailable",
		})
		return
	}

	body := gin.H{
		"status":  "healthy",
		"message": "PikaSmart API is running",
	}
	if h.breaker != nil {
		body["generator"] = h.breaker.State().String()
	}
	c.JSON(http.StatusOK, body)
}
