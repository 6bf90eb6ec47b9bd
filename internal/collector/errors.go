package collector

import (
	"errors"
	"fmt"
)

// UpstreamError reports a failed observations request. Status is the HTTP
// status code, or 0 when no response was received.
type UpstreamError struct {
	SeriesID string
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fred %s: status %d: %s", e.SeriesID, e.Status, e.Message)
	}
	return fmt.Sprintf("fred %s: %s", e.SeriesID, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HasStatus reports whether the upstream answered with an HTTP status.
func (e *UpstreamError) HasStatus() bool { return e.Status != 0 }

// ConfigError is the cause of an UpstreamError raised before any request is
// made because required configuration is missing.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s not configured", e.Setting)
}

// IsConfigError reports whether err was caused by missing configuration.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
