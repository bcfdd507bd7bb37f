package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"fluxactu/internal/usecase/reader"
)

// Run status labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// Refresher re-runs the article fetch.
type Refresher interface {
	Refresh(ctx context.Context) (reader.Status, error)
}

// Scheduler triggers Refresher on a cron schedule. A run that fires while the
// previous one is still going is skipped.
type Scheduler struct {
	cfg       Config
	refresher Refresher
	metrics   *Metrics
	logger    *slog.Logger

	cron    *cron.Cron
	running atomic.Bool
}

// NewScheduler validates cfg and prepares the cron runner. metrics may be nil.
func NewScheduler(cfg Config, refresher Refresher, metrics *Metrics, logger *slog.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("refresh config: %w", err)
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("refresh config: schedule is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	s := &Scheduler{
		cfg:       cfg,
		refresher: refresher,
		metrics:   metrics,
		logger:    logger,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		),
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("add refresh job: %w", err)
	}
	return s, nil
}

// Start begins running scheduled refreshes in the background.
func (s *Scheduler) Start() {
	s.logger.Info("refresh scheduler started",
		slog.String("schedule", s.cfg.Schedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Duration("timeout", s.cfg.Timeout))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running refresh, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("refresh scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop refresh scheduler: %w", ctx.Err())
	}
}

// RunOnce performs one refresh bounded by the configured timeout and returns its status label.
func (s *Scheduler) RunOnce(ctx context.Context) string {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous refresh still running, skipping")
		s.record(StatusSkipped, 0)
		return StatusSkipped
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	st, err := s.refresher.Refresh(ctx)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Error("scheduled refresh failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		s.record(StatusFailure, elapsed.Seconds())
		return StatusFailure
	}

	s.logger.Info("scheduled refresh completed",
		slog.Int("articles", st.Count),
		slog.Duration("duration", elapsed))
	s.record(StatusSuccess, elapsed.Seconds())
	return StatusSuccess
}

func (s *Scheduler) record(status string, seconds float64) {
	if s.metrics != nil {
		s.metrics.RecordRun(status, seconds)
	}
}
