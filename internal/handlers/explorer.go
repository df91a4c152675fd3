package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/gin-gonic/gin"
)

// ExplorerHandler serves the lazily loaded parts of repository cards
type ExplorerHandler struct {
	explorerService *services.ExplorerService
}

func NewExplorerHandler(explorerService *services.ExplorerService) *ExplorerHandler {
	return &ExplorerHandler{
		explorerService: explorerService,
	}
}

// RevealLanguages is sent when a repository card becomes visible
func (h *ExplorerHandler) RevealLanguages(c *gin.Context) {
	card, err := h.explorerService.RevealRepository(c.Request.Context(), middleware.GetSession(c).ID, c.Param("owner"), c.Param("repo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

// GetLanguages returns the language card without triggering a fetch
func (h *ExplorerHandler) GetLanguages(c *gin.Context) {
	card, err := h.explorerService.LanguageCard(middleware.GetSession(c).ID, c.Param("owner"), c.Param("repo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *ExplorerHandler) ExpandDirectory(c *gin.Context) {
	node, err := h.explorerService.ExpandDirectory(c.Request.Context(), middleware.GetSession(c).ID, c.Param("owner"), c.Param("repo"), c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}

func (h *ExplorerHandler) CollapseDirectory(c *gin.Context) {
	node, err := h.explorerService.CollapseDirectory(middleware.GetSession(c).ID, c.Param("owner"), c.Param("repo"), c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, node)
}
