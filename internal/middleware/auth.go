package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"evergrain-service/internal/models"
	"evergrain-service/internal/store"
)

// AdminAuth guards the admin routes with the opaque bearer token issued by
// the login handler. There is one operator; there are no roles.
func AdminAuth(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.NewErrorResponse("UNAUTHORIZED", "Authorization header required"))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			c.JSON(http.StatusUnauthorized, models.NewErrorResponse("UNAUTHORIZED", "Invalid authorization format"))
			c.Abort()
			return
		}

		if !st.HasSession(c.Request.Context(), token) {
			c.JSON(http.StatusUnauthorized, models.NewErrorResponse("SESSION_EXPIRED", "Admin session is not valid, log in again"))
			c.Abort()
			return
		}

		c.Set("admin_token", token)
		c.Next()
	}
}
