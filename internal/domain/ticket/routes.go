package ticket

import "github.com/gin-gonic/gin"

// RegisterRoutes registers ticket routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	t := r.Group("/tickets")
	{
		t.POST("", h.Create)
		t.GET("", h.ListMine)
		t.GET("/:id", h.Get)
		t.POST("/:id/assignees", h.Assign)
		t.POST("/:id/projects", h.LinkProject)
	}
}
