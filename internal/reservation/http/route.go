package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers visitor and host reservation routes.
// showScope guards read endpoints, makeScope guards booking and cancellation.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, showScope, makeScope gin.HandlerFunc) {
	group := g.Group("/reservations")
	group.Use(authMiddleware)
	{
		group.GET("", showScope, h.List)
		group.POST("", makeScope, h.Create)
		group.GET("/:id", showScope, h.Get)
		group.POST("/:id/cancel", makeScope, h.Cancel)
	}

	host := g.Group("/host/reservations")
	host.Use(authMiddleware)
	{
		host.GET("", showScope, h.ListForHost)
	}
}
