package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public availability search.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.POST("/search-availability", h.Search)
}
