package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// DBStore is the durable backend over PostgreSQL. Concurrency control is
// delegated to the database: bookmark toggling is a single UPDATE statement,
// so two concurrent toggles of the same id cannot lose an update.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore wraps an established gorm connection.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// CreateLiveLecture inserts a new live lecture with isLive=true and viewers=0.
func (s *DBStore) CreateLiveLecture(ctx context.Context, in lecture.CreateLiveInput) (lecture.LiveLecture, error) {
	rec := lecture.LiveLecture{
		Title:      in.Title,
		Subject:    types.Subject(in.Subject),
		LectureURL: in.LectureURL,
		IsLive:     true,
		Viewers:    0,
		CreatedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return lecture.LiveLecture{}, unavailable("create live lecture", err)
	}
	return rec, nil
}

// LiveLectures returns every live lecture, newest first.
func (s *DBStore) LiveLectures(ctx context.Context) ([]lecture.LiveLecture, error) {
	var out []lecture.LiveLecture
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, unavailable("list live lectures", err)
	}
	return out, nil
}

// UpdateLiveLecture applies a partial patch to the matching record.
func (s *DBStore) UpdateLiveLecture(ctx context.Context, id int, updates lecture.LiveUpdate) (lecture.LiveLecture, error) {
	var rec lecture.LiveLecture
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lecture.LiveLecture{}, ErrNotFound
		}
		return lecture.LiveLecture{}, unavailable("load live lecture", err)
	}

	if updates.Viewers != nil {
		rec.Viewers = *updates.Viewers
	}
	if updates.IsLive != nil {
		rec.IsLive = *updates.IsLive
	}

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return lecture.LiveLecture{}, unavailable("update live lecture", err)
	}
	return rec, nil
}

// DeleteLiveLecture removes the matching record, reporting whether a row was
// actually deleted.
func (s *DBStore) DeleteLiveLecture(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&lecture.LiveLecture{}, "id = ?", id)
	if res.Error != nil {
		return false, unavailable("delete live lecture", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteExpiredLiveLectures evicts rows older than the retention window and
// returns the count removed.
func (s *DBStore) DeleteExpiredLiveLectures(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-RetentionWindow)
	res := s.db.WithContext(ctx).Delete(&lecture.LiveLecture{}, "created_at < ?", cutoff)
	if res.Error != nil {
		return 0, unavailable("delete expired live lectures", res.Error)
	}
	return int(res.RowsAffected), nil
}

// CreateRecordedLecture inserts a new recorded lecture with views=0 and
// isBookmarked=false.
func (s *DBStore) CreateRecordedLecture(ctx context.Context, in lecture.CreateRecordedInput) (lecture.RecordedLecture, error) {
	rec := lecture.RecordedLecture{
		Title:        in.Title,
		Subject:      types.Subject(in.Subject),
		YoutubeURL:   in.YoutubeURL,
		Views:        0,
		UploadDate:   time.Now(),
		IsBookmarked: false,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return lecture.RecordedLecture{}, unavailable("create recorded lecture", err)
	}
	return rec, nil
}

// RecordedLectures returns recorded lectures newest first, optionally
// restricted to one subject. An empty subject means all subjects.
func (s *DBStore) RecordedLectures(ctx context.Context, subject types.Subject) ([]lecture.RecordedLecture, error) {
	query := s.db.WithContext(ctx).Order("upload_date DESC, id DESC")
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var out []lecture.RecordedLecture
	if err := query.Find(&out).Error; err != nil {
		return nil, unavailable("list recorded lectures", err)
	}
	return out, nil
}

// RecordedLecturesBySubject is the always-filtered form of RecordedLectures.
func (s *DBStore) RecordedLecturesBySubject(ctx context.Context, subject types.Subject) ([]lecture.RecordedLecture, error) {
	return s.RecordedLectures(ctx, subject)
}

// UpdateRecordedLecture applies a partial patch to the matching record.
func (s *DBStore) UpdateRecordedLecture(ctx context.Context, id int, updates lecture.RecordedUpdate) (lecture.RecordedLecture, error) {
	var rec lecture.RecordedLecture
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lecture.RecordedLecture{}, ErrNotFound
		}
		return lecture.RecordedLecture{}, unavailable("load recorded lecture", err)
	}

	if updates.Title != nil {
		rec.Title = *updates.Title
	}
	if updates.Views != nil {
		rec.Views = *updates.Views
	}

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return lecture.RecordedLecture{}, unavailable("update recorded lecture", err)
	}
	return rec, nil
}

// DeleteRecordedLecture removes the matching record, reporting whether a row
// was actually deleted.
func (s *DBStore) DeleteRecordedLecture(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&lecture.RecordedLecture{}, "id = ?", id)
	if res.Error != nil {
		return false, unavailable("delete recorded lecture", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ToggleBookmark negates the bookmark flag in one statement, avoiding the
// read-then-write race entirely.
func (s *DBStore) ToggleBookmark(ctx context.Context, id int) (lecture.RecordedLecture, error) {
	var rec lecture.RecordedLecture
	res := s.db.WithContext(ctx).Raw(
		`UPDATE recorded_lectures
		 SET is_bookmarked = NOT is_bookmarked
		 WHERE id = ?
		 RETURNING id, title, subject, youtube_url, views, upload_date, is_bookmarked`,
		id,
	).Scan(&rec)
	if res.Error != nil {
		return lecture.RecordedLecture{}, unavailable("toggle bookmark", res.Error)
	}
	if res.RowsAffected == 0 {
		return lecture.RecordedLecture{}, ErrNotFound
	}
	return rec, nil
}
