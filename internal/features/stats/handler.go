package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
	"github.com/dev-boi/lecture-server-go/pkg/response"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// CacheKey is the cache entry holding the serialized stats payload. Mutating
// handlers delete it so the next read recomputes.
const CacheKey = "api:stats"

// cacheTTL bounds staleness even without invalidation.
const cacheTTL = 30 * time.Second

// Stats is the catalog-wide aggregate served at /api/stats.
type Stats struct {
	LiveLectures     int           `json:"liveLectures"`
	RecordedLectures int           `json:"recordedLectures"`
	TotalViews       int           `json:"totalViews"`
	Subjects         SubjectCounts `json:"subjects"`
}

// SubjectCounts breaks recorded lectures down per subject.
type SubjectCounts struct {
	Physics   int `json:"physics"`
	Chemistry int `json:"chemistry"`
	Botany    int `json:"botany"`
	Zoology   int `json:"zoology"`
}

// Handler serves the stats aggregate.
type Handler struct {
	store  storage.Store
	logger *slog.Logger
	cache  cache.Client
}

// NewHandler constructs a stats handler.
func NewHandler(store storage.Store, logger *slog.Logger, cacheClient cache.Client) *Handler {
	return &Handler{store: store, logger: logger, cache: cacheClient}
}

// Get serves the aggregate, from cache when fresh.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, CacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	liveLectures, err := h.store.LiveLectures(ctx)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	recordedLectures, err := h.store.RecordedLectures(ctx, "")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	stats := Stats{
		LiveLectures:     len(liveLectures),
		RecordedLectures: len(recordedLectures),
	}
	for _, rec := range recordedLectures {
		stats.TotalViews += rec.Views
		switch rec.Subject {
		case types.SubjectPhysics:
			stats.Subjects.Physics++
		case types.SubjectChemistry:
			stats.Subjects.Chemistry++
		case types.SubjectBotany:
			stats.Subjects.Botany++
		case types.SubjectZoology:
			stats.Subjects.Zoology++
		}
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := h.cache.Set(ctx, CacheKey, string(payload), cacheTTL); err != nil {
			h.logger.Warn("stats cache store failed", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, stats)
}
