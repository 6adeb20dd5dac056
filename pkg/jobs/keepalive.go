package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// KeepAliveInterval is how often the self-ping fires.
const KeepAliveInterval = 10 * time.Minute

// KeepAlivePingJob pings the server's own stats endpoint so free-tier hosting
// platforms do not put the process to sleep. Failures are logged and ignored.
type KeepAlivePingJob struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewKeepAlivePingJob creates a keep-alive job targeting baseURL.
func NewKeepAlivePingJob(baseURL string, logger *slog.Logger) *KeepAlivePingJob {
	return &KeepAlivePingJob{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Name returns the job name.
func (j *KeepAlivePingJob) Name() string {
	return "keep_alive_ping"
}

// Execute performs one self-ping. Always returns nil: a failed ping is not a
// job failure.
func (j *KeepAlivePingJob) Execute(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/stats", j.baseURL), nil)
	if err != nil {
		j.logger.Warn("keep-alive request build failed", slog.String("error", err.Error()))
		return nil
	}

	resp, err := j.client.Do(req)
	if err != nil {
		j.logger.Warn("keep-alive ping failed", slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		j.logger.Warn("keep-alive ping returned non-OK status", slog.Int("status", resp.StatusCode))
	}
	return nil
}
