package live

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

func TestCreateLiveLecture(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	rec := doJSON(t, engine, http.MethodPost, "/api/live-lectures", gin.H{
		"title":      "Kinematics",
		"subject":    "physics",
		"lectureUrl": "https://live-server.dev-boi.xyz/room/7",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created lecture.LiveLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Kinematics", created.Title)
	assert.True(t, created.IsLive)
	assert.Equal(t, 0, created.Viewers)
}

func TestCreateLiveLectureValidation(t *testing.T) {
	engine := newTestRouter(storage.NewMemStore())

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"subject": "physics", "lectureUrl": "https://live-server.dev-boi.xyz/r"}},
		{"bad subject", gin.H{"title": "X", "subject": "maths", "lectureUrl": "https://live-server.dev-boi.xyz/r"}},
		{"bad url", gin.H{"title": "X", "subject": "physics", "lectureUrl": "https://example.com/r"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/live-lectures", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "message")
		})
	}
}

func TestListLiveLectures(t *testing.T) {
	store := storage.NewMemStore()
	engine := newTestRouter(store)

	rec := doJSON(t, engine, http.MethodGet, "/api/live-lectures", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	doJSON(t, engine, http.MethodPost, "/api/live-lectures", gin.H{
		"title":      "Thermodynamics",
		"subject":    "physics",
		"lectureUrl": "https://live-server.dev-boi.xyz/room/1",
	})

	rec = doJSON(t, engine, http.MethodGet, "/api/live-lectures", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lectures []lecture.LiveLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lectures))
	require.Len(t, lectures, 1)
	assert.Equal(t, "Thermodynamics", lectures[0].Title)
}

func TestUpdateViewers(t *testing.T) {
	store := storage.NewMemStore()
	engine := newTestRouter(store)

	created := doJSON(t, engine, http.MethodPost, "/api/live-lectures", gin.H{
		"title":      "Optics",
		"subject":    "physics",
		"lectureUrl": "https://live-server.dev-boi.xyz/room/2",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var lec lecture.LiveLecture
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &lec))

	rec := doJSON(t, engine, http.MethodPatch, "/api/live-lectures/1/viewers", gin.H{"viewers": 37})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated lecture.LiveLecture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 37, updated.Viewers)

	rec = doJSON(t, engine, http.MethodPatch, "/api/live-lectures/1/viewers", gin.H{"viewers": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPatch, "/api/live-lectures/1/viewers", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPatch, "/api/live-lectures/99/viewers", gin.H{"viewers": 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodPatch, "/api/live-lectures/abc/viewers", gin.H{"viewers": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteLiveLecture(t *testing.T) {
	store := storage.NewMemStore()
	engine := newTestRouter(store)

	doJSON(t, engine, http.MethodPost, "/api/live-lectures", gin.H{
		"title":      "Waves",
		"subject":    "physics",
		"lectureUrl": "https://live-server.dev-boi.xyz/room/3",
	})

	rec := doJSON(t, engine, http.MethodDelete, "/api/live-lectures/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Live lecture deleted successfully"}`, rec.Body.String())

	rec = doJSON(t, engine, http.MethodDelete, "/api/live-lectures/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Live lecture not found"}`, rec.Body.String())

	list := doJSON(t, engine, http.MethodGet, "/api/live-lectures", nil)
	assert.JSONEq(t, "[]", list.Body.String())
}
