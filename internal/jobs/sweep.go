// Package jobs wires background work onto schedules.
package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/armkeys/new-stock-product-control/internal/newstock"
)

// SweepJob runs the reconciliation sweep on a cron schedule, daily by
// default. The sweep runs outside any interactive context: failures are
// logged, never surfaced.
type SweepJob struct {
	sweeper  *newstock.Sweeper
	schedule string
	cron     *cron.Cron
}

// NewSweepJob creates a scheduled sweep. schedule is a cron spec
// ("@daily", "0 3 * * *", ...).
func NewSweepJob(sweeper *newstock.Sweeper, schedule string) *SweepJob {
	return &SweepJob{sweeper: sweeper, schedule: schedule}
}

// Start registers the schedule and begins running. Returns an error only
// for an invalid cron spec.
func (j *SweepJob) Start() error {
	j.cron = cron.New()

	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.sweeper.Sweep(context.Background()); err != nil {
			slog.Error("scheduled sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	slog.Info("reconciliation sweep scheduled", "schedule", j.schedule)
	return nil
}

// Stop deregisters the schedule. Safe to call before Start.
func (j *SweepJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
		slog.Info("reconciliation sweep stopped")
	}
}
