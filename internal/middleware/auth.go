package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"timedesk/internal/domain"
	jwtsvc "timedesk/internal/pkg/jwt"
	"timedesk/internal/pkg/response"
)

const principalKey = "principal"

// Auth validates the Bearer token and stores the resolved principal in
// the gin context. Handlers read it back with Principal(c) and pass it
// explicitly into services.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(principalKey, domain.Principal{
			ID:       claims.UserID,
			Role:     domain.Role(claims.Role),
			Language: claims.Language,
		})

		c.Next()
	}
}

// Principal returns the principal resolved by Auth, or a zero value
// when the route was reached without it.
func Principal(c *gin.Context) domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}
	}
	p, ok := v.(domain.Principal)
	if !ok {
		return domain.Principal{}
	}
	return p
}

func abortUnauthorized(c *gin.Context, message string) {
	response.ErrorMessage(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}
