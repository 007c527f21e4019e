package timer

import "github.com/gin-gonic/gin"

// RegisterRoutes registers timer routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	t := r.Group("/timer")
	{
		t.POST("/toggle", h.Toggle)
		t.GET("/current", h.Current)
		t.GET("/entries", h.List)
		t.PATCH("/entries/:id/notes", h.SetNotes)
	}
}
