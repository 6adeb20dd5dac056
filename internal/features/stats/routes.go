package stats

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the stats endpoint to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.GET("/stats", handler.Get)
}
