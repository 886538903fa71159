// Package jobs runs scheduled maintenance tasks.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CronManager schedules the maintenance jobs.
type CronManager struct {
	cron    *cron.Cron
	sweeper *ImageSweeper
	spec    string
}

// NewCronManager creates a manager that runs sweeper on spec. spec accepts
// five-field cron expressions, an optional leading seconds field, and
// descriptors such as "@hourly".
func NewCronManager(spec string, sweeper *ImageSweeper) *CronManager {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &CronManager{
		cron:    cron.New(cron.WithParser(parser)),
		sweeper: sweeper,
		spec:    spec,
	}
}

// Start registers the jobs and starts the scheduler.
func (m *CronManager) Start() error {
	if _, err := m.cron.AddFunc(m.spec, m.sweepImages); err != nil {
		return fmt.Errorf("schedule image sweeper %q: %w", m.spec, err)
	}
	m.cron.Start()
	log.Info().Str("schedule", m.spec).Msg("cron jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("cron jobs stopped")
}

func (m *CronManager) sweepImages() {
	log.Debug().Str("job", "sweep_images").Msg("cron job started")
	removed, err := m.sweeper.Sweep()
	if err != nil {
		log.Error().Err(err).Str("job", "sweep_images").Msg("cron job failed")
		return
	}
	log.Info().Str("job", "sweep_images").Int("removed", removed).Msg("cron job completed")
}
