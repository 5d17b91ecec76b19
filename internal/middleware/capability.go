package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/utils"
)

// RequireCapability answers 403 unless the current user's role grants the
// capability. It must run after RequireAuth.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !user.Can(capability) {
			apierrors.Forbidden(c, "Administrator rights required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireWebCapability is RequireCapability for rendered pages: the visitor
// is sent to the dashboard with a flash message instead.
func RequireWebCapability(catalog *i18n.Catalog, capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok || !user.Can(capability) {
			utils.AddFlash(c, catalog.T(GetPreferences(c).Language, "auth.access_denied"))
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
