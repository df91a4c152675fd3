package handlers

import (
	"net/http"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body for err and records err on the context for the request log
func respondError(c *gin.Context, err error) {
	status, body := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
	} else {
		c.Error(err).SetType(gin.ErrorTypePublic)
	}
	c.JSON(status, body)
}
