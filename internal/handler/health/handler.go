package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks reachability of the remote table source.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	source Pinger
}

func NewHandler(source Pinger) *Handler {
	return &Handler{source: source}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.source.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "table source unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
