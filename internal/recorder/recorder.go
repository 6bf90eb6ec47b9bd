package recorder

import "EconDash/internal/model"

// Recorder keeps a history of live dashboard loads.
type Recorder interface {
	RecordLoad(evt *model.LoadEvent) error
	// Recent returns up to limit events, newest first.
	Recent(limit int) ([]model.LoadEvent, error)
	Close() error
}
