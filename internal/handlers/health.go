package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/ghdash/internal/session"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store *session.Store
}

func NewHealthHandler(store *session.Store) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// HealthCheck reports liveness and the number of live sessions
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"sessions":  h.store.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
