package attachment

import "github.com/gin-gonic/gin"

// RegisterRoutes registers attachment routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/tickets/:id/attachments", h.Upload)
	r.GET("/tickets/:id/attachments", h.ListForTicket)

	a := r.Group("/attachments")
	{
		a.GET("/:id", h.Download)
		a.GET("/:id/:name", h.Download)
		a.DELETE("/:id", h.Delete)
	}
}
