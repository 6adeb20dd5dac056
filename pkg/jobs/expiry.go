package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/dev-boi/lecture-server-go/pkg/metrics"
)

// SweepInterval is how often the expiry sweeper runs.
const SweepInterval = 60 * time.Second

// LectureStore is the narrow storage surface the sweeper needs.
type LectureStore interface {
	DeleteExpiredLiveLectures(ctx context.Context) (int, error)
}

// ExpirySweepJob evicts live lectures older than the retention window.
type ExpirySweepJob struct {
	store  LectureStore
	logger *slog.Logger
}

// NewExpirySweepJob creates a new expiry sweep job.
func NewExpirySweepJob(store LectureStore, logger *slog.Logger) *ExpirySweepJob {
	return &ExpirySweepJob{store: store, logger: logger}
}

// Name returns the job name.
func (j *ExpirySweepJob) Name() string {
	return "expiry_sweep"
}

// Execute removes expired live lectures, logging the count when non-zero.
func (j *ExpirySweepJob) Execute(ctx context.Context) error {
	deleted, err := j.store.DeleteExpiredLiveLectures(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		metrics.RecordEvictions(deleted)
		j.logger.Info("deleted expired live lectures", slog.Int("count", deleted))
	}
	return nil
}
