package infra

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper drops expired entries and reports how many it removed
type Sweeper interface {
	Sweep() int
}

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	log      zerolog.Logger
}

// NewScheduler creates a scheduler that sweeps the record cache on schedule.
// schedule uses the six-field cron syntax (with seconds).
func NewScheduler(sweeper Sweeper, schedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sweeper:  sweeper,
		schedule: schedule,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.RunSweep)
	if err != nil {
		return fmt.Errorf("failed to add cache sweep job: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("scheduler started")
	return nil
}

// RunSweep sweeps the cache once
func (s *Scheduler) RunSweep() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("expired record sets swept")
	}
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}
