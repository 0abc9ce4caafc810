package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/stockstats/internal/logger"
	"github.com/robfig/cron/v3"
)

// Job is the unit of work triggered by the scheduler, typically a price ingestion run.
type Job func(ctx context.Context) error

// Scheduler triggers a Job on a six-field cron expression (seconds first).
// Overlapping runs are skipped: a tick that fires while the previous run is
// still in progress is dropped.
type Scheduler struct {
	cron *cron.Cron
	job  Job
	ctx  context.Context
}

// NewScheduler creates a Scheduler bound to ctx; ctx is handed to every job run.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		job: job,
		ctx: ctx,
	}
}

// Register adds the job under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("register ingestion job %q: %w", spec, err)
	}
	logger.L().Info().Str("cron", spec).Msg("ingestion job registered")
	return nil
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.L().Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.L().Info().Msg("scheduler stopped")
}

// RunNow executes the job synchronously (used on startup).
func (s *Scheduler) RunNow() error {
	return s.execute()
}

func (s *Scheduler) run() {
	_ = s.execute()
}

func (s *Scheduler) execute() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := s.job(s.ctx)
	ev := logger.L().Info()
	if err != nil {
		ev = logger.L().Error().Err(err)
	}
	ev.Int64("latency_ms", time.Since(start).Milliseconds()).Msg("scheduled ingestion finished")
	return err
}
