package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timedesk/internal/domain"
	"timedesk/internal/pkg/response"
)

// RequireRole ensures the authenticated principal holds the given role.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if !p.Authenticated() {
			response.ErrorMessage(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		if p.Role != required {
			response.ErrorMessage(c, http.StatusForbidden, "Access denied: insufficient permissions", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
