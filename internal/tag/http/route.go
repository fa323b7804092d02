package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers tag catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/tags")

	// Public catalog
	group.GET("", h.List)

	// Admin only
	group.POST("", authMiddleware, adminMiddleware, h.Create)
	group.DELETE("/:id", authMiddleware, adminMiddleware, h.Delete)
}
