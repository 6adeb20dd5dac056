package lecture

import "errors"

var (
	ErrTitleRequired     = errors.New("lecture title is required")
	ErrInvalidSubject    = errors.New("subject must be one of physics, chemistry, botany, zoology")
	ErrInvalidLectureURL = errors.New("please provide a valid live-server.dev-boi.xyz URL")
	ErrInvalidYoutubeURL = errors.New("please provide a valid youtu.be URL")
)

// IsValidationError reports whether err is one of the model validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidSubject) ||
		errors.Is(err, ErrInvalidLectureURL) ||
		errors.Is(err, ErrInvalidYoutubeURL)
}
