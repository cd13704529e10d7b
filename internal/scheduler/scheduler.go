package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work, such as a full search run.
type Job func(ctx context.Context) error

// Scheduler owns the main loop: fires Job on a cron schedule until ctx is
// cancelled. Runs never overlap; a tick that lands while a run is still in
// progress is skipped.
type Scheduler struct {
	spec      string
	schedule  cron.Schedule
	location  *time.Location
	job       Job
	immediate bool
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithImmediateRun makes Run execute the job once before waiting for the
// first tick.
func WithImmediateRun() Option {
	return func(s *Scheduler) { s.immediate = true }
}

// NewScheduler validates spec (standard five-field cron or a descriptor such
// as "@daily") and timezone (IANA name, empty means UTC).
func NewScheduler(spec, timezone string, job Job, logger *slog.Logger, opts ...Option) (*Scheduler, error) {
	if spec == "" {
		return nil, fmt.Errorf("cron schedule is required")
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	location := time.UTC
	if timezone != "" {
		location, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	s := &Scheduler{
		spec:     spec,
		schedule: schedule,
		location: location,
		job:      job,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Next returns the first activation strictly after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Run blocks until ctx is cancelled. Job errors are logged and do not stop
// the schedule. It returns nil on graceful shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"schedule", s.spec,
		"timezone", s.location.String(),
		"next_run", s.Next(time.Now()).Format(time.RFC3339),
	)

	if s.immediate {
		s.runOnce(ctx)
	}

	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() { s.runOnce(ctx) }))
	c.Start()

	<-ctx.Done()
	s.logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err, "elapsed", time.Since(start).Round(time.Millisecond))
		return
	}
	s.logger.Info("scheduled run complete", "elapsed", time.Since(start).Round(time.Millisecond))
}
