package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/services"
	"github.com/gin-gonic/gin"
)

type NetworkHandler struct {
	networkService *services.NetworkService
}

func NewNetworkHandler(networkService *services.NetworkService) *NetworkHandler {
	return &NetworkHandler{
		networkService: networkService,
	}
}

// GetNetwork returns the follower graph of a user
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	graph, err := h.networkService.FollowerNetwork(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, graph)
}
