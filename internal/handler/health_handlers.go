package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger is implemented by optional backends (the redis store) that health
// checks should cover.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger *logrus.Logger
}

func NewHealthHandler(store Pinger, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			h.logger.Errorf("Health check: store unreachable: %v", err)
			status["status"] = "degraded"
			status["store"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["store"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}
