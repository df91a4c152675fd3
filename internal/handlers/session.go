package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession reports the search form state and the displayed result of the session
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess := middleware.ViewSession(c)
	state, message := sess.Search()

	response := gin.H{
		"id":     sess.ID,
		"mode":   sess.Mode(),
		"search": gin.H{"state": state, "error": message},
	}
	if profile := sess.Profile(); profile != nil {
		response["profile"] = profile.User.Login
	}
	if battle := sess.Battle(); battle != nil {
		response["battle"] = battle
	}

	c.JSON(http.StatusOK, response)
}
