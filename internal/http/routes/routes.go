package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/dev-boi/lecture-server-go/internal/features/live"
	"github.com/dev-boi/lecture-server-go/internal/features/recorded"
	"github.com/dev-boi/lecture-server-go/internal/features/stats"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
	"github.com/dev-boi/lecture-server-go/pkg/health"
	"github.com/dev-boi/lecture-server-go/pkg/response"
)

// Register wires all routes onto the engine. db is nil when the transient
// backend is active.
func Register(engine *gin.Engine, store storage.Store, db *gorm.DB, logger *slog.Logger, cacheClient cache.Client) {
	// Probes and metrics live outside the /api prefix.
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.VersionInfo)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, "pong")
	})

	live.RegisterRoutes(api, live.NewHandler(store, logger, cacheClient))
	recorded.RegisterRoutes(api, recorded.NewHandler(store, logger, cacheClient))
	stats.RegisterRoutes(api, stats.NewHandler(store, logger, cacheClient))
}
