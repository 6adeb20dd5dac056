package storage

import (
	"context"
	"time"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// RetentionWindow is the age after which a live lecture becomes eligible for
// eviction.
const RetentionWindow = 24 * time.Hour

// Store is the capability set every persistence backend implements. Callers
// depend on this interface only, never on a concrete backend. Create inputs
// are assumed to have passed lecture validation already; handing a malformed
// input to a Store is a caller bug, not a recoverable error.
type Store interface {
	// Live lectures
	CreateLiveLecture(ctx context.Context, in lecture.CreateLiveInput) (lecture.LiveLecture, error)
	LiveLectures(ctx context.Context) ([]lecture.LiveLecture, error)
	UpdateLiveLecture(ctx context.Context, id int, updates lecture.LiveUpdate) (lecture.LiveLecture, error)
	DeleteLiveLecture(ctx context.Context, id int) (bool, error)
	DeleteExpiredLiveLectures(ctx context.Context) (int, error)

	// Recorded lectures
	CreateRecordedLecture(ctx context.Context, in lecture.CreateRecordedInput) (lecture.RecordedLecture, error)
	RecordedLectures(ctx context.Context, subject types.Subject) ([]lecture.RecordedLecture, error)
	RecordedLecturesBySubject(ctx context.Context, subject types.Subject) ([]lecture.RecordedLecture, error)
	UpdateRecordedLecture(ctx context.Context, id int, updates lecture.RecordedUpdate) (lecture.RecordedLecture, error)
	DeleteRecordedLecture(ctx context.Context, id int) (bool, error)
	ToggleBookmark(ctx context.Context, id int) (lecture.RecordedLecture, error)
}

var (
	_ Store = (*MemStore)(nil)
	_ Store = (*DBStore)(nil)
)
