package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers office listing and host management routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, officeScope gin.HandlerFunc) {
	group := g.Group("/offices")

	// Public browsing
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// Host management
	group.POST("", authMiddleware, officeScope, h.Create)
	group.PATCH("/:id", authMiddleware, officeScope, h.Update)
	group.DELETE("/:id", authMiddleware, officeScope, h.Delete)
}
