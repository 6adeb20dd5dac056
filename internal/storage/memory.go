package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// MemStore is the transient backend: two process-local maps guarded by a
// single mutex. Operations never fail; every read returns value copies so
// callers cannot mutate stored records.
type MemStore struct {
	mu sync.Mutex

	liveLectures     map[int]lecture.LiveLecture
	recordedLectures map[int]lecture.RecordedLecture
	nextLiveID       int
	nextRecordedID   int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		liveLectures:     make(map[int]lecture.LiveLecture),
		recordedLectures: make(map[int]lecture.RecordedLecture),
		nextLiveID:       1,
		nextRecordedID:   1,
	}
}

// CreateLiveLecture stores a new live lecture with isLive=true and viewers=0.
func (s *MemStore) CreateLiveLecture(_ context.Context, in lecture.CreateLiveInput) (lecture.LiveLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := lecture.LiveLecture{
		ID:         s.nextLiveID,
		Title:      in.Title,
		Subject:    types.Subject(in.Subject),
		LectureURL: in.LectureURL,
		IsLive:     true,
		Viewers:    0,
		CreatedAt:  time.Now(),
	}
	s.nextLiveID++
	s.liveLectures[rec.ID] = rec
	return rec, nil
}

// LiveLectures returns every live lecture, newest first.
func (s *MemStore) LiveLectures(_ context.Context) ([]lecture.LiveLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]lecture.LiveLecture, 0, len(s.liveLectures))
	for _, rec := range s.liveLectures {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateLiveLecture applies a partial patch to the matching record.
func (s *MemStore) UpdateLiveLecture(_ context.Context, id int, updates lecture.LiveUpdate) (lecture.LiveLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.liveLectures[id]
	if !ok {
		return lecture.LiveLecture{}, ErrNotFound
	}
	if updates.Viewers != nil {
		rec.Viewers = *updates.Viewers
	}
	if updates.IsLive != nil {
		rec.IsLive = *updates.IsLive
	}
	s.liveLectures[id] = rec
	return rec, nil
}

// DeleteLiveLecture removes the matching record. Deleting a missing id is a
// no-op reported as false.
func (s *MemStore) DeleteLiveLecture(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liveLectures[id]; !ok {
		return false, nil
	}
	delete(s.liveLectures, id)
	return true, nil
}

// DeleteExpiredLiveLectures evicts every live lecture older than the
// retention window and returns the count removed.
func (s *MemStore) DeleteExpiredLiveLectures(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-RetentionWindow)
	deleted := 0
	for id, rec := range s.liveLectures {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.liveLectures, id)
			deleted++
		}
	}
	return deleted, nil
}

// CreateRecordedLecture stores a new recorded lecture with views=0 and
// isBookmarked=false.
func (s *MemStore) CreateRecordedLecture(_ context.Context, in lecture.CreateRecordedInput) (lecture.RecordedLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := lecture.RecordedLecture{
		ID:           s.nextRecordedID,
		Title:        in.Title,
		Subject:      types.Subject(in.Subject),
		YoutubeURL:   in.YoutubeURL,
		Views:        0,
		UploadDate:   time.Now(),
		IsBookmarked: false,
	}
	s.nextRecordedID++
	s.recordedLectures[rec.ID] = rec
	return rec, nil
}

// RecordedLectures returns recorded lectures newest first, optionally
// restricted to one subject. An empty subject means all subjects.
func (s *MemStore) RecordedLectures(_ context.Context, subject types.Subject) ([]lecture.RecordedLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]lecture.RecordedLecture, 0, len(s.recordedLectures))
	for _, rec := range s.recordedLectures {
		if subject != "" && rec.Subject != subject {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadDate.Equal(out[j].UploadDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

// RecordedLecturesBySubject is the always-filtered form of RecordedLectures.
func (s *MemStore) RecordedLecturesBySubject(ctx context.Context, subject types.Subject) ([]lecture.RecordedLecture, error) {
	return s.RecordedLectures(ctx, subject)
}

// UpdateRecordedLecture applies a partial patch to the matching record.
func (s *MemStore) UpdateRecordedLecture(_ context.Context, id int, updates lecture.RecordedUpdate) (lecture.RecordedLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recordedLectures[id]
	if !ok {
		return lecture.RecordedLecture{}, ErrNotFound
	}
	if updates.Title != nil {
		rec.Title = *updates.Title
	}
	if updates.Views != nil {
		rec.Views = *updates.Views
	}
	s.recordedLectures[id] = rec
	return rec, nil
}

// DeleteRecordedLecture removes the matching record.
func (s *MemStore) DeleteRecordedLecture(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recordedLectures[id]; !ok {
		return false, nil
	}
	delete(s.recordedLectures, id)
	return true, nil
}

// ToggleBookmark negates the bookmark flag. The read-modify-write happens
// under the store mutex, so concurrent toggles of the same id serialize.
func (s *MemStore) ToggleBookmark(_ context.Context, id int) (lecture.RecordedLecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recordedLectures[id]
	if !ok {
		return lecture.RecordedLecture{}, ErrNotFound
	}
	rec.IsBookmarked = !rec.IsBookmarked
	s.recordedLectures[id] = rec
	return rec, nil
}
