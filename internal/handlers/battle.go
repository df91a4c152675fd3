package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/gin-gonic/gin"
)

type BattleHandler struct {
	battleService *services.BattleService
}

func NewBattleHandler(battleService *services.BattleService) *BattleHandler {
	return &BattleHandler{
		battleService: battleService,
	}
}

type battleQuery struct {
	Left  string `form:"left" binding:"required"`
	Right string `form:"right" binding:"required"`
}

// Battle compares two users
func (h *BattleHandler) Battle(c *gin.Context) {
	var query battleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, apperror.ValidationFailed("left and right usernames are required"))
		return
	}

	result, err := h.battleService.Compare(c.Request.Context(), middleware.ViewSession(c), query.Left, query.Right)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
