package recorded

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
)

func newTestRouter(store storage.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := gin.New()
	api := engine.Group("/api")
	RegisterRoutes(api, NewHandler(store, logger, cache.NewMemoryCache()))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func createLecture(t *testing.T, engine *gin.Engine, title, subject string) lecture.RecordedLecture {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/recorded-lectures", gin.H{
		"title":      title,
		"subject":    subject,
		"youtubeUrl": "https://youtu.be/dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created lecture.RecordedLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestRecordedLectureLifecycle(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	created := createLecture(t, engine, "Kinematics", "physics")
	assert.Equal(t, 0, created.Views)
	assert.False(t, created.IsBookmarked)

	// Toggle the bookmark on.
	rec := doJSON(t, engine, http.MethodPatch, "/api/recorded-lectures/1/bookmark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled lecture.RecordedLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled.IsBookmarked)

	// Delete and verify the listing is empty again.
	rec = doJSON(t, engine, http.MethodDelete, "/api/recorded-lectures/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Recorded lecture deleted successfully"}`, rec.Body.String())

	list := doJSON(t, engine, http.MethodGet, "/api/recorded-lectures", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestCreateRecordedLectureValidation(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"subject": "physics", "youtubeUrl": "https://youtu.be/abc"}},
		{"bad subject", gin.H{"title": "X", "subject": "biology", "youtubeUrl": "https://youtu.be/abc"}},
		{"watch url", gin.H{"title": "X", "subject": "physics", "youtubeUrl": "https://www.youtube.com/watch?v=abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/recorded-lectures", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListRecordedLecturesSubjectQuery(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	createLecture(t, engine, "Optics", "physics")
	createLecture(t, engine, "Bonding", "chemistry")
	createLecture(t, engine, "Waves", "physics")

	rec := doJSON(t, engine, http.MethodGet, "/api/recorded-lectures?subject=physics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lectures []lecture.RecordedLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lectures))
	assert.Len(t, lectures, 2)

	// Unrecognized labels match nothing rather than erroring.
	rec = doJSON(t, engine, http.MethodGet, "/api/recorded-lectures?subject=history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/recorded-lectures", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lectures))
	assert.Len(t, lectures, 3)
}

func TestListRecordedLecturesBySubjectPath(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	createLecture(t, engine, "Photosynthesis", "botany")
	createLecture(t, engine, "Genetics", "zoology")

	rec := doJSON(t, engine, http.MethodGet, "/api/recorded-lectures/subject/botany", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lectures []lecture.RecordedLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lectures))
	require.Len(t, lectures, 1)
	assert.Equal(t, "Photosynthesis", lectures[0].Title)
}

func TestIncrementViews(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	createLecture(t, engine, "Cell Division", "botany")

	for want := 1; want <= 3; want++ {
		rec := doJSON(t, engine, http.MethodPatch, "/api/recorded-lectures/1/views", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var updated lecture.RecordedLecture
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, want, updated.Views)
	}

	rec := doJSON(t, engine, http.MethodPatch, "/api/recorded-lectures/42/views", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Recorded lecture not found"}`, rec.Body.String())
}

func TestToggleBookmarkNotFound(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	rec := doJSON(t, engine, http.MethodPatch, "/api/recorded-lectures/5/bookmark", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Recorded lecture not found"}`, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPatch, "/api/recorded-lectures/notanid/bookmark", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkImport(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	rec := doJSON(t, engine, http.MethodPost, "/api/recorded-lectures/bulk", gin.H{
		"lectures": []gin.H{
			{"subject": "physics", "lecture_name": "Kinematics", "lecture_link": "https://youtu.be/aaa111"},
			{"subject": "chemistry", "lecture_name": "Bonding", "lecture_link": "https://youtu.be/bbb222"},
			{"subject": "physics", "lecture_name": "No Link"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Message string `json:"message"`
		Added   int    `json:"added"`
		Failed  int    `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "Successfully added 2 lectures, 1 failed", result.Message)

	list := doJSON(t, engine, http.MethodGet, "/api/recorded-lectures", nil)
	var lectures []lecture.RecordedLecture
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &lectures))
	assert.Len(t, lectures, 2)
}

func TestBulkImportRejectsNonArray(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	rec := doJSON(t, engine, http.MethodPost, "/api/recorded-lectures/bulk", gin.H{"lectures": nil})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Lectures must be an array"}`, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/api/recorded-lectures/bulk", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkImportAllSucceedMessage(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	rec := doJSON(t, engine, http.MethodPost, "/api/recorded-lectures/bulk", gin.H{
		"lectures": []gin.H{
			{"subject": "zoology", "lecture_name": "Taxonomy", "lecture_link": "https://youtu.be/ccc333"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Message string `json:"message"`
		Added   int    `json:"added"`
		Failed  int    `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "Successfully added 1 lectures", result.Message)
}
