// Package jobs runs periodic maintenance inside the server process.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron    *cron.Cron
	purger  SessionPurger
	timeout time.Duration
}

// NewScheduler creates a Scheduler. Jobs are registered by Start.
func NewScheduler(purger SessionPurger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		purger:  purger,
		timeout: time.Minute,
	}
}

// Start registers the session sweep on schedule (standard cron or "@every 1h") and starts the runner.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.SweepSessions); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	slog.Info("scheduler started", "sweep_schedule", schedule)
	return nil
}

// Stop stops the runner and waits for a running job, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out")
	}
}

// SweepSessions deletes expired sessions once.
func (s *Scheduler) SweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		slog.Error("session sweep failed", "error", err)
		return
	}
	slog.Info("session sweep finished", "deleted", n)
}
