package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	storeReady func(ctx context.Context) bool
}

func NewHealthHandler(storeReady func(ctx context.Context) bool) *HealthHandler {
	return &HealthHandler{
		storeReady: storeReady,
	}
}

// Healthcheck reports liveness. The quote store is optional infrastructure,
// so an unreachable database degrades the report instead of failing it: the
// calculator endpoints keep working without persistence.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	database := "ok"
	if h.storeReady == nil || !h.storeReady(c.Request.Context()) {
		database = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database,
	})
}
