package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs named background jobs on cron schedules.
// Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

func New(lgr zerolog.Logger) *Scheduler {
	cronLogger := cronLogAdapter{lgr: lgr.With().Str("component", "scheduler").Logger()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: lgr,
	}
}

// Add registers job under spec (standard cron syntax or descriptors like "@every 6h").
// Each run gets a context bounded by timeout.
func (s *Scheduler) Add(spec, name string, timeout time.Duration, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error().Err(err).Str("job", name).Dur("took", time.Since(start)).Msg("Scheduled job failed")
			return
		}
		s.logger.Info().Str("job", name).Dur("took", time.Since(start)).Msg("Scheduled job finished")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s with %q: %w", name, spec, err)
	}
	s.logger.Info().Str("job", name).Str("schedule", spec).Msg("Job scheduled")
	return nil
}

// Len returns the number of registered jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}

// cronLogAdapter satisfies cron.Logger with zerolog
type cronLogAdapter struct {
	lgr zerolog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.lgr.Debug().Fields(keysAndValues).Msg(msg)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.lgr.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
