package live

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches live-lecture endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	lectures := router.Group("/live-lectures")
	{
		lectures.GET("", handler.List)
		lectures.POST("", handler.Create)
		lectures.DELETE("/:id", handler.Delete)
		lectures.PATCH("/:id/viewers", handler.UpdateViewers)
	}
}
