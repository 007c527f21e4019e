package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public auth endpoints.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	a := r.Group("/auth")
	{
		a.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes mounts endpoints that need a principal.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	a := r.Group("/auth")
	{
		a.GET("/me", h.Me)
	}
}
