package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/podstore/podstore/internal/cache"
	"github.com/podstore/podstore/internal/utils"
)

// HealthHandler reports the liveness of the service and its stores.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "down"
	}

	utils.Success(c, 200, "Service healthy", gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
