package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"EconDash/internal/dashboard"
	"EconDash/internal/model"
	"EconDash/internal/report"
)

// probeTimeout bounds one scheduled live collection.
const probeTimeout = 2 * time.Minute

// Scheduler manages the background cron tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Service *dashboard.Service
	Logger  zerolog.Logger
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *dashboard.Service, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger{logger})),
		Service: svc,
		Logger:  logger,
		Ctx:     ctx,
	}
}

// RegisterAll registers the fallback reload and upstream probe tasks. An
// empty spec leaves that task disabled.
func (s *Scheduler) RegisterAll(reloadCron, probeCron string) error {
	if reloadCron != "" {
		if _, err := s.Cron.AddFunc(reloadCron, s.reloadFallback); err != nil {
			return fmt.Errorf("register fallback reload: %w", err)
		}
	}
	if probeCron != "" {
		if _, err := s.Cron.AddFunc(probeCron, s.probe); err != nil {
			return fmt.Errorf("register probe: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunProbeNow executes the probe task immediately (RUN_ON_START).
func (s *Scheduler) RunProbeNow() {
	s.probe()
}

func (s *Scheduler) reloadFallback() {
	fb := s.Service.Fallback
	if err := fb.Reload(); err != nil {
		s.Logger.Error().Err(err).Str("source", fb.Source()).Msg("fallback reload failed, keeping previous dataset")
		return
	}
	s.Logger.Debug().Str("source", fb.Source()).Msg("fallback reloaded")
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(s.Ctx, probeTimeout)
	defer cancel()

	ds, evt, err := s.Service.Live(ctx, model.TriggerProbe)
	if err != nil {
		s.Logger.Warn().Str("load_id", evt.ID).Msg("upstream probe failed; dashboard will serve fallback data")
		return
	}
	s.Logger.Info().
		Str("load_id", evt.ID).
		Str("summary", report.FormatSummary(ds, "live", evt.StartedAt)).
		Msg("upstream probe ok")
}

// cronLogger routes robfig/cron messages through zerolog.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
