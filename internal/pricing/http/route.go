package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public price calculator.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.POST("/calculate-price", h.CalculatePrice)
}
