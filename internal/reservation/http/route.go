package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation routes. Every route is for authenticated staff.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.POST("/:id/payments", h.AddPayment)
	}
}
