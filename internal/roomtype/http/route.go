package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room-type related routes.
// Reads are public so the booking site can render the catalogue; writes need an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/room-types")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Admin Routes ===
	admin := group.Group("", authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/images", h.UploadImage)
	}
}
