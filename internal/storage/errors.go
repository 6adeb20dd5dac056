package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that no record matches the requested id. It is a
	// plain absent-result, not a backend failure.
	ErrNotFound = errors.New("lecture not found")

	// ErrUnavailable signals that the durable backend's connection or query
	// failed. The HTTP boundary maps it to a server error; no retries happen
	// at this layer.
	ErrUnavailable = errors.New("storage unavailable")
)

// unavailable wraps a backend failure so callers can tell it apart from a
// legitimate empty or not-found result via errors.Is(err, ErrUnavailable).
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
}
