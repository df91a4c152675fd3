package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/gin-gonic/gin"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles 404 errors for non-existent routes
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":          "not_found",
		"message":        "No route for " + c.Request.Method + " " + c.Request.URL.Path,
		"requested_path": c.Request.URL.Path,
		"timestamp":      time.Now().Format("2006-01-02 15:04:05"),
	})
}

// MethodNotAllowed reuses the JSON error body for known paths with the wrong method
func (h *NotFoundHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, apperror.Response{
		Error:   "method_not_allowed",
		Message: c.Request.Method + " is not supported for " + c.Request.URL.Path,
	})
}
