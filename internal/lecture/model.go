package lecture

import (
	"regexp"
	"strings"
	"time"

	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// URL patterns enforced at the model boundary. Storage assumes inputs that
// already passed Validate.
var (
	liveURLPattern    = regexp.MustCompile(`^https://live-server\.dev-boi\.xyz`)
	youtubeURLPattern = regexp.MustCompile(`^https://youtu\.be/[a-zA-Z0-9_-]+$`)
)

// LiveLecture is a scheduled or in-progress session pointing at the live server.
type LiveLecture struct {
	ID         int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string        `gorm:"type:text;not null" json:"title"`
	Subject    types.Subject `gorm:"type:text;not null;index" json:"subject"`
	LectureURL string        `gorm:"type:text;not null;column:lecture_url" json:"lectureUrl"`
	IsLive     bool          `gorm:"not null;default:false;column:is_live" json:"isLive"`
	Viewers    int           `gorm:"not null;default:0" json:"viewers"`
	CreatedAt  time.Time     `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the default table name.
func (LiveLecture) TableName() string { return "live_lectures" }

// RecordedLecture is a catalog entry for an externally hosted video.
type RecordedLecture struct {
	ID           int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string        `gorm:"type:text;not null" json:"title"`
	Subject      types.Subject `gorm:"type:text;not null;index" json:"subject"`
	YoutubeURL   string        `gorm:"type:text;not null;column:youtube_url" json:"youtubeUrl"`
	Views        int           `gorm:"not null;default:0" json:"views"`
	UploadDate   time.Time     `gorm:"column:upload_date" json:"uploadDate"`
	IsBookmarked bool          `gorm:"not null;default:false;column:is_bookmarked" json:"isBookmarked"`
}

// TableName overrides the default table name.
func (RecordedLecture) TableName() string { return "recorded_lectures" }

// CreateLiveInput carries data for creating a live lecture.
type CreateLiveInput struct {
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	LectureURL string `json:"lectureUrl"`
}

// Validate checks the input against the model rules and returns the
// normalized subject on success.
func (in CreateLiveInput) Validate() (types.Subject, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", ErrTitleRequired
	}
	subject, ok := types.ParseSubject(in.Subject)
	if !ok {
		return "", ErrInvalidSubject
	}
	if !liveURLPattern.MatchString(in.LectureURL) {
		return "", ErrInvalidLectureURL
	}
	return subject, nil
}

// CreateRecordedInput carries data for creating a recorded lecture.
type CreateRecordedInput struct {
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	YoutubeURL string `json:"youtubeUrl"`
}

// Validate checks the input against the model rules and returns the
// normalized subject on success.
func (in CreateRecordedInput) Validate() (types.Subject, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", ErrTitleRequired
	}
	subject, ok := types.ParseSubject(in.Subject)
	if !ok {
		return "", ErrInvalidSubject
	}
	if !youtubeURLPattern.MatchString(in.YoutubeURL) {
		return "", ErrInvalidYoutubeURL
	}
	return subject, nil
}

// LiveUpdate captures mutable live-lecture fields. Only non-nil fields are
// applied.
type LiveUpdate struct {
	Viewers *int  `json:"viewers"`
	IsLive  *bool `json:"isLive"`
}

// RecordedUpdate captures mutable recorded-lecture fields. Only non-nil
// fields are applied.
type RecordedUpdate struct {
	Title *string `json:"title"`
	Views *int    `json:"views"`
}
