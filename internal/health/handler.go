// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leaguedesk/standings/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	redis  redis.Cmdable
	logger *zap.SugaredLogger
}

// New creates a new health handler instance. A nil redis client skips the
// Redis check.
func New(db *gorm.DB, redisClient redis.Cmdable, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: map[string]string{}}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "component", "postgres", "error", err)
		resp.Status = "unhealthy"
		resp.Checks["postgres"] = "unhealthy"
	} else {
		resp.Checks["postgres"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warnw("health check failed", "component", "redis", "error", err)
			resp.Status = "unhealthy"
			resp.Checks["redis"] = "unhealthy"
		} else {
			resp.Checks["redis"] = "ok"
		}
	}

	if resp.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
