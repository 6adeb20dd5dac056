package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dev-boi/lecture-server-go/internal/features/stats"
	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
	"github.com/dev-boi/lecture-server-go/pkg/response"
)

// Handler processes live-lecture HTTP requests.
type Handler struct {
	store  storage.Store
	logger *slog.Logger
	cache  cache.Client
}

// NewHandler constructs a live-lecture handler.
func NewHandler(store storage.Store, logger *slog.Logger, cacheClient cache.Client) *Handler {
	return &Handler{store: store, logger: logger, cache: cacheClient}
}

// List returns all live lectures, newest first.
func (h *Handler) List(c *gin.Context) {
	lectures, err := h.store.LiveLectures(c.Request.Context())
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to fetch live lectures", err)
		return
	}
	c.JSON(http.StatusOK, lectures)
}

// Create validates the payload and stores a new live lecture.
func (h *Handler) Create(c *gin.Context) {
	var input lecture.CreateLiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	subject, err := input.Validate()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	input.Subject = string(subject)

	created, err := h.store.CreateLiveLecture(c.Request.Context(), input)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to create live lecture", err)
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

// Delete removes a live lecture by id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.lectureID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteLiveLecture(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to delete live lecture", err)
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "Live lecture not found")
		return
	}

	h.invalidateStats(c.Request.Context())
	response.OK(c, "Live lecture deleted successfully")
}

// UpdateViewers patches the viewer count of a live lecture.
func (h *Handler) UpdateViewers(c *gin.Context) {
	id, ok := h.lectureID(c)
	if !ok {
		return
	}

	var req struct {
		Viewers *int `json:"viewers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Viewers == nil {
		response.Error(c, http.StatusBadRequest, "Invalid viewer count")
		return
	}
	if *req.Viewers < 0 {
		response.Error(c, http.StatusBadRequest, "Viewer count must be non-negative")
		return
	}

	updated, err := h.store.UpdateLiveLecture(c.Request.Context(), id, lecture.LiveUpdate{Viewers: req.Viewers})
	if errors.Is(err, storage.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "Live lecture not found")
		return
	}
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to update viewer count", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) lectureID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid lecture id")
		return 0, false
	}
	return id, true
}

func (h *Handler) invalidateStats(ctx context.Context) {
	if err := h.cache.Delete(ctx, stats.CacheKey); err != nil {
		h.logger.Warn("stats cache invalidation failed", slog.String("error", err.Error()))
	}
}
