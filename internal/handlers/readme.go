package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/gin-gonic/gin"
)

type ReadmeHandler struct {
	readmeService *services.ReadmeService
}

func NewReadmeHandler(readmeService *services.ReadmeService) *ReadmeHandler {
	return &ReadmeHandler{
		readmeService: readmeService,
	}
}

// GetReadme opens the detail view of a repository. A missing README is not an error.
func (h *ReadmeHandler) GetReadme(c *gin.Context) {
	readme, err := h.readmeService.Open(c.Request.Context(), middleware.ViewSession(c), c.Param("owner"), c.Param("repo"), c.Query("branch"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, readme)
}
