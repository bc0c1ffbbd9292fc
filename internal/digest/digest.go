// Package digest periodically reports the triage backlog.
package digest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Counter counts triage records created since a point in time.
type Counter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// Scheduler logs how many messages were triaged between runs.
type Scheduler struct {
	counter  Counter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
	lastRun time.Time
}

// NewScheduler creates a digest scheduler for a standard five-field cron
// expression evaluated in UTC.
func NewScheduler(counter Counter, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		counter:  counter,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the job and starts the cron runner. The first digest
// covers the time since Start.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runDigest(ctx)
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.lastRun = s.now().UTC()
	s.cron.Start()
	s.running = true

	s.logger.Info("triage digest started",
		"schedule", s.schedule,
		"next_run", s.cron.Entry(s.entryID).Next,
	)
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("triage digest stopped")
}

// RunNow reports the backlog since the previous run and returns the count.
func (s *Scheduler) RunNow(ctx context.Context) (int, error) {
	s.mu.Lock()
	since := s.lastRun
	now := s.now().UTC()
	s.mu.Unlock()

	n, err := s.counter.CountSince(ctx, since)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.lastRun = now
	s.mu.Unlock()

	s.logger.Info("triage digest", "since", since, "triaged", n)
	return n, nil
}

func (s *Scheduler) runDigest(ctx context.Context) {
	if _, err := s.RunNow(ctx); err != nil {
		s.logger.Error("triage digest failed", "error", err)
	}
}
