package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job represents a background job.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// Scheduler manages and executes background jobs on fixed intervals.
type Scheduler struct {
	jobs    map[string]*scheduledJob
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// NewScheduler creates a new job scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*scheduledJob),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job with its run interval. Must be called before Start.
func (s *Scheduler) AddJob(job Job, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.Name()] = &scheduledJob{job: job, interval: interval}
}

// Start launches one goroutine per job. Each job's runs are serialized on its
// own goroutine, so a tick that fires mid-run is coalesced by the ticker
// rather than starting a second concurrent run.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	jobs := make([]*scheduledJob, 0, len(s.jobs))
	for _, scheduled := range s.jobs {
		jobs = append(jobs, scheduled)
	}
	s.mu.Unlock()

	for _, scheduled := range jobs {
		go s.run(scheduled)
	}

	s.logger.Info("job scheduler started", slog.Int("jobs", len(jobs)))
}

func (s *Scheduler) run(scheduled *scheduledJob) {
	ticker := time.NewTicker(scheduled.interval)
	defer ticker.Stop()

	s.logger.Info("starting job",
		slog.String("name", scheduled.job.Name()),
		slog.Duration("interval", scheduled.interval),
	)

	for {
		select {
		case <-ticker.C:
			s.execute(scheduled.job)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) execute(job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panic", slog.String("name", job.Name()), slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := job.Execute(ctx); err != nil {
		s.logger.Error("job execution failed",
			slog.String("name", job.Name()),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// Stop cancels all job goroutines. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.logger.Info("job scheduler stopped")
}

// RunOnce executes a registered job immediately, outside its schedule.
func (s *Scheduler) RunOnce(jobName string) error {
	s.mu.Lock()
	scheduled, exists := s.jobs[jobName]
	s.mu.Unlock()

	if !exists {
		return fmt.Errorf("job not found: %s", jobName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return scheduled.job.Execute(ctx)
}
