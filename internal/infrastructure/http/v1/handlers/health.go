package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gpustock/internal/infrastructure/storage/postgres"
)

// HealthHandler handles liveness and readiness probes.
type HealthHandler struct {
	pool    *postgres.Pool
	version string
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool, version string) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		version: version,
		started: time.Now(),
	}
}

// Live handles GET /health/live - process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready - database is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.pool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info handles GET /health/info - build and uptime info.
func (h *HealthHandler) Info(c *gin.Context) {
	stats := h.pool.Stat()

	c.JSON(http.StatusOK, gin.H{
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"db_pool": gin.H{
			"total_conns":    stats.TotalConns(),
			"idle_conns":     stats.IdleConns(),
			"acquired_conns": stats.AcquiredConns(),
		},
	})
}
