// Package dashboard runs live dataset loads and decides when fallback data is served.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"EconDash/internal/fallback"
	"EconDash/internal/model"
	"EconDash/internal/recorder"
)

// ErrorMessage is the only failure detail exposed to clients.
const ErrorMessage = "Failed to fetch economic data"

// Dataset sources reported in a View.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// DatasetCollector produces a complete live dataset or fails.
type DatasetCollector interface {
	Collect(ctx context.Context) (*model.EconomicDataset, error)
}

// View is what the dashboard page renders: live data, or fallback data with a banner message.
type View struct {
	Source string                 `json:"source"`
	Error  string                 `json:"error,omitempty"`
	LoadID string                 `json:"loadId"`
	Data   *model.EconomicDataset `json:"data"`
}

// Service coordinates live loads, load history and the fallback dataset.
type Service struct {
	Collector DatasetCollector
	Fallback  *fallback.Store
	Recorder  recorder.Recorder
	Logger    zerolog.Logger
}

// NewService creates a Service.
func NewService(col DatasetCollector, fb *fallback.Store, rec recorder.Recorder, logger zerolog.Logger) *Service {
	return &Service{Collector: col, Fallback: fb, Recorder: rec, Logger: logger}
}

// Live collects a fresh dataset and records the attempt. The returned event
// is populated whether or not the load succeeded.
func (s *Service) Live(ctx context.Context, trigger string) (*model.EconomicDataset, *model.LoadEvent, error) {
	evt := &model.LoadEvent{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
	}
	ds, err := s.Collector.Collect(ctx)
	evt.Duration = time.Since(evt.StartedAt)

	if err != nil {
		evt.Error = err.Error()
		s.Logger.Error().Err(err).
			Str("load_id", evt.ID).Str("trigger", trigger).Dur("duration", evt.Duration).
			Msg("dashboard load failed")
	} else {
		evt.OK = true
		evt.Points = ds.Counts()
		s.Logger.Info().
			Str("load_id", evt.ID).Str("trigger", trigger).Dur("duration", evt.Duration).
			Interface("points", evt.Points).
			Msg("dashboard load")
	}

	if recErr := s.Recorder.RecordLoad(evt); recErr != nil {
		s.Logger.Error().Err(recErr).Str("load_id", evt.ID).Msg("record load")
	}
	if err != nil {
		return nil, evt, err
	}
	return ds, evt, nil
}

// View loads live data and substitutes the fallback dataset on any failure.
func (s *Service) View(ctx context.Context) View {
	ds, evt, err := s.Live(ctx, model.TriggerRequest)
	if err != nil {
		return View{Source: SourceFallback, Error: ErrorMessage, LoadID: evt.ID, Data: s.Fallback.Dataset()}
	}
	return View{Source: SourceLive, LoadID: evt.ID, Data: ds}
}

// History returns recent loads, newest first.
func (s *Service) History(limit int) ([]model.LoadEvent, error) {
	return s.Recorder.Recent(limit)
}
