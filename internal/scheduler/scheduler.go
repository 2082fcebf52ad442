// internal/scheduler/scheduler.go

// Package scheduler runs the periodic score recompute.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/services"
)

// Recomputer is satisfied by *services.ScoringService.
type Recomputer interface {
	RecomputeScores(ctx context.Context, window time.Duration) (*services.RecomputeReport, error)
}

type Scheduler struct {
	cron       *cron.Cron
	recomputer Recomputer
	window     time.Duration
	timeout    time.Duration
	entryID    cron.EntryID
}

// New registers the recompute job on a cron schedule. A tick that fires
// while the previous run is still going is skipped.
func New(schedule string, recomputer Recomputer, window, timeout time.Duration) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(logrus.StandardLogger())
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		recomputer: recomputer,
		window:     window,
		timeout:    timeout,
	}

	entryID, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) })
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	s.entryID = entryID
	return s, nil
}

// RunOnce performs a single recompute pass and logs its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) (*services.RecomputeReport, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.recomputer.RecomputeScores(ctx, s.window)
	if err != nil {
		logrus.WithError(err).Error("Scheduled score recompute failed")
		return nil, err
	}
	if partial := report.Err(); partial != nil {
		logrus.WithError(partial).Warn("Scheduled score recompute skipped items")
	}
	return report, nil
}

// Next reports when the job fires next. Zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context that is done once the
// running job, if any, has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
