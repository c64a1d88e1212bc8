package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room inventory routes.
// Front desk staff can read and change statuses; structural changes need an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/status", h.UpdateStatus)
	}

	// === Admin Routes ===
	admin := group.Group("", adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
