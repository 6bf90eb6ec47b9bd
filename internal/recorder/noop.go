package recorder

import "EconDash/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordLoad(_ *model.LoadEvent) error     { return nil }
func (n *NoopRecorder) Recent(_ int) ([]model.LoadEvent, error) { return []model.LoadEvent{}, nil }
func (n *NoopRecorder) Close() error                            { return nil }
