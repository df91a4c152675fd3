package middleware

import (
	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/gin-gonic/gin"
)

// RequireProfile rejects requests that operate on the displayed result set
// when the session is not showing a single profile
func RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := ViewSession(c)

		if sess == nil || sess.Profile() == nil {
			status, body := apperror.HTTPStatus(apperror.NoActiveProfile())
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Next()
	}
}
