package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether durable storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe. The service stays ready on storage
// failure because mutations degrade to in-memory with warnings; the
// check result is reported for operators.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	storage := "healthy"
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			storage = "unhealthy: " + err.Error()
		}
	} else {
		storage = "degraded: in-memory only"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"storage": storage,
		},
	})
}
