package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers office image routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	offices := g.Group("/offices/:id/images")
	{
		offices.GET("", h.ListByOffice)
		offices.POST("", authMiddleware, h.Upload)
		offices.DELETE("/:imageID", authMiddleware, h.Delete)
	}

	images := g.Group("/images")
	{
		images.GET("/:id", h.Serve)
		images.GET("/:id/thumbnail", h.ServeThumbnail)
	}
}
