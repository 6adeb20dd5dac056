package recorded

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches recorded-lecture endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	lectures := router.Group("/recorded-lectures")
	{
		lectures.GET("", handler.List)
		lectures.GET("/subject/:subject", handler.ListBySubject)
		lectures.POST("", handler.Create)
		lectures.POST("/bulk", handler.BulkImport)
		lectures.PATCH("/:id/bookmark", handler.ToggleBookmark)
		lectures.PATCH("/:id/views", handler.IncrementViews)
		lectures.DELETE("/:id", handler.Delete)
	}
}
