package recorded

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dev-boi/lecture-server-go/internal/features/stats"
	"github.com/dev-boi/lecture-server-go/internal/importer"
	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
	"github.com/dev-boi/lecture-server-go/pkg/response"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// Handler processes recorded-lecture HTTP requests.
type Handler struct {
	store    storage.Store
	logger   *slog.Logger
	cache    cache.Client
	importer *importer.Importer
}

// NewHandler constructs a recorded-lecture handler.
func NewHandler(store storage.Store, logger *slog.Logger, cacheClient cache.Client) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		cache:    cacheClient,
		importer: importer.New(store, logger),
	}
}

// List returns recorded lectures newest first, optionally filtered by the
// subject query parameter.
func (h *Handler) List(c *gin.Context) {
	lectures, err := h.store.RecordedLectures(c.Request.Context(), subjectFilter(c.Query("subject")))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to fetch recorded lectures", err)
		return
	}
	c.JSON(http.StatusOK, lectures)
}

// ListBySubject returns recorded lectures for one subject path parameter.
func (h *Handler) ListBySubject(c *gin.Context) {
	lectures, err := h.store.RecordedLecturesBySubject(c.Request.Context(), subjectFilter(c.Param("subject")))
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to fetch lectures by subject", err)
		return
	}
	c.JSON(http.StatusOK, lectures)
}

// Create validates the payload and stores a new recorded lecture.
func (h *Handler) Create(c *gin.Context) {
	var input lecture.CreateRecordedInput
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

	created, err := h.store.CreateRecordedLecture(c.Request.Context(), input)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to create recorded lecture", err)
		return
	}

	h.invalidateStats(c.Request.Context())
	c.JSON(http.StatusCreated, created)
}

// BulkImport ingests a batch of candidate lectures, tolerating per-item
// failures.
func (h *Handler) BulkImport(c *gin.Context) {
	var req struct {
		Lectures []importer.Candidate `json:"lectures"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Lectures == nil {
		response.Error(c, http.StatusBadRequest, "Lectures must be an array")
		return
	}

	summary := h.importer.Import(c.Request.Context(), req.Lectures)

	if summary.Added > 0 {
		h.invalidateStats(c.Request.Context())
	}

	message := fmt.Sprintf("Successfully added %d lectures", summary.Added)
	if summary.Failed > 0 {
		message += fmt.Sprintf(", %d failed", summary.Failed)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"added":   summary.Added,
		"failed":  summary.Failed,
	})
}

// ToggleBookmark negates the bookmark flag of a recorded lecture.
func (h *Handler) ToggleBookmark(c *gin.Context) {
	id, ok := h.lectureID(c)
	if !ok {
		return
	}

	updated, err := h.store.ToggleBookmark(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "Recorded lecture not found")
		return
	}
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to toggle bookmark", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// IncrementViews bumps the view counter by exactly one, treating an absent
// count as zero.
func (h *Handler) IncrementViews(c *gin.Context) {
	id, ok := h.lectureID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	lectures, err := h.store.RecordedLectures(ctx, "")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to update view count", err)
		return
	}

	var current *lecture.RecordedLecture
	for i := range lectures {
		if lectures[i].ID == id {
			current = &lectures[i]
			break
		}
	}
	if current == nil {
		response.Error(c, http.StatusNotFound, "Recorded lecture not found")
		return
	}

	views := current.Views + 1
	updated, err := h.store.UpdateRecordedLecture(ctx, id, lecture.RecordedUpdate{Views: &views})
	if errors.Is(err, storage.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "Recorded lecture not found")
		return
	}
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to update view count", err)
		return
	}

	h.invalidateStats(ctx)
	c.JSON(http.StatusOK, updated)
}

// Delete removes a recorded lecture by id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.lectureID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteRecordedLecture(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "Failed to delete recorded lecture", err)
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "Recorded lecture not found")
		return
	}

	h.invalidateStats(c.Request.Context())
	response.OK(c, "Recorded lecture deleted successfully")
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

// subjectFilter normalizes a raw filter label. Unrecognized labels pass
// through unchanged so they match nothing, mirroring the unfiltered-equals-
// empty behavior the clients rely on.
func subjectFilter(raw string) types.Subject {
	if raw == "" {
		return ""
	}
	if subject, ok := types.ParseSubject(raw); ok {
		return subject
	}
	return types.Subject(raw)
}
