package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"EconDash/internal/api"
	"EconDash/internal/collector"
	"EconDash/internal/config"
	"EconDash/internal/dashboard"
	"EconDash/internal/fallback"
	"EconDash/internal/logx"
	"EconDash/internal/recorder"
	"EconDash/internal/scheduler"
)

// ConfigPath is the location of the YAML config file.
type ConfigPath string

// App holds the dependencies built by Wire.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Service   *dashboard.Service
	Scheduler *scheduler.Scheduler
	Server    *api.Server
}

// ProvideConfig loads and validates the config (for Wire).
func ProvideConfig(path ConfigPath) (*config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// ProvideLogger builds the root logger from config (for Wire).
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logx.New(cfg.Log.Level, cfg.Log.Format)
}

// ProvideFetcher creates the FRED client. A missing key only warns: every
// fetch will fail with a ConfigError and the dashboard serves fallback data.
func ProvideFetcher(cfg *config.Config, logger zerolog.Logger) *collector.FredFetcher {
	l := logx.Component(logger, "fred")
	if !cfg.HasAPIKey() {
		l.Warn().Msg("FRED_API_KEY is not set; live data is unavailable")
	}
	return collector.NewFredFetcher(cfg.Fred.BaseURL, cfg.Fred.APIKey, cfg.Proxy, l)
}

// ProvideCollector creates the dataset collector (for Wire).
func ProvideCollector(f collector.Fetcher, logger zerolog.Logger) *collector.Collector {
	return collector.NewCollector(f, logx.Component(logger, "collector"))
}

// ProvideFallback loads the fallback dataset (for Wire).
func ProvideFallback(cfg *config.Config, logger zerolog.Logger) (*fallback.Store, error) {
	fb, err := fallback.NewStore(cfg.Fallback.Path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("source", fb.Source()).Msg("fallback dataset loaded")
	return fb, nil
}

// ProvideRecorder opens the load history. SQLite failures degrade to the noop recorder.
// The returned cleanup closes the database.
func ProvideRecorder(cfg *config.Config, logger zerolog.Logger) (recorder.Recorder, func(), error) {
	l := logx.Component(logger, "recorder")
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder(), func() {}, nil
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, l)
	if err != nil {
		l.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder(), func() {}, nil
	}
	cleanup := func() {
		if err := sr.Close(); err != nil {
			l.Error().Err(err).Msg("close sqlite recorder")
		}
	}
	return sr, cleanup, nil
}

// ProvideService creates the dashboard service (for Wire).
func ProvideService(col *collector.Collector, fb *fallback.Store, rec recorder.Recorder, logger zerolog.Logger) *dashboard.Service {
	return dashboard.NewService(col, fb, rec, logx.Component(logger, "dashboard"))
}

// ProvideScheduler creates the scheduler with its cron tasks registered (for Wire).
func ProvideScheduler(ctx context.Context, cfg *config.Config, svc *dashboard.Service, logger zerolog.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.NewScheduler(ctx, svc, logx.Component(logger, "scheduler"))
	if err := s.RegisterAll(cfg.Fallback.ReloadCron, cfg.Probe.Cron); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideServer creates the HTTP API server (for Wire).
func ProvideServer(cfg *config.Config, svc *dashboard.Service, logger zerolog.Logger) *api.Server {
	return api.NewServer(cfg.Server.ListenAddr, svc, logx.Component(logger, "api"))
}
