package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers guest routes. Front desk staff manage guests; deleting one needs an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/guests")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
	}

	// === Admin Routes ===
	admin := group.Group("", adminMiddleware)
	{
		admin.DELETE("/:id", h.Delete)
	}
}
