package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version information, typically set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Handler handles health check endpoints. db is nil when the transient
// storage backend is active; readiness then skips the database check.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler creates a new health check handler.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health is a liveness probe that always returns OK.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// Ready reports whether the service can handle requests, including database
// connectivity when the durable backend is active.
func (h *Handler) Ready(c *gin.Context) {
	checks := make(map[string]string)
	status := "ready"

	if h.db != nil {
		checks["database"] = h.checkDatabase()
		if checks["database"] != "ok" {
			status = "not_ready"
		}
	} else {
		checks["storage"] = "memory"
	}

	statusCode := http.StatusOK
	if status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   Version,
		Checks:    checks,
	})
}

// VersionInfo returns build information about the service.
func (h *Handler) VersionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	})
}

func (h *Handler) checkDatabase() string {
	sqlDB, err := h.db.DB()
	if err != nil {
		h.logger.Error("readiness database handle failed", slog.String("error", err.Error()))
		return "unavailable"
	}
	if err := sqlDB.Ping(); err != nil {
		h.logger.Error("readiness database ping failed", slog.String("error", err.Error()))
		return "unavailable"
	}
	return "ok"
}
