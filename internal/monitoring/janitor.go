package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// Janitor prunes old activity-log rows on a cron schedule.
type Janitor struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	schedule  cron.Schedule
	nextRun   time.Time
	ticker    *time.Ticker
	done      chan bool
}

// NewJanitor creates a janitor. The schedule is a standard cron expression
// (descriptors like @daily work too); retentionDays bounds how far back
// activity rows are kept.
func NewJanitor(eventSvc services.EventServiceProvider, retentionDays int, scheduleExpr string) (*Janitor, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &Janitor{
		eventSvc:  eventSvc,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		schedule:  schedule,
		nextRun:   schedule.Next(time.Now()),
		done:      make(chan bool),
	}, nil
}

// Run starts the janitor's ticking loop.
func (j *Janitor) Run() {
	log.Info().Time("next_run", j.nextRun).Msg("Starting activity janitor")
	j.ticker = time.NewTicker(1 * time.Minute)
	defer j.ticker.Stop()

	for {
		select {
		case <-j.done:
			log.Info().Msg("Stopping activity janitor")
			return
		case now := <-j.ticker.C:
			if now.After(j.nextRun) {
				j.prune(now)
				j.nextRun = j.schedule.Next(now)
			}
		}
	}
}

// Stop halts the janitor.
func (j *Janitor) Stop() {
	j.done <- true
}

func (j *Janitor) prune(now time.Time) {
	cutoff := now.Add(-j.retention)
	pruned, err := j.eventSvc.PruneEventsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Janitor: failed to prune events")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Janitor: pruned old events")
	}
}
