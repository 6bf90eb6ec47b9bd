package model

import "time"

// Load triggers.
const (
	TriggerRequest = "request"
	TriggerProbe   = "probe"
	TriggerCLI     = "cli"
)

// LoadEvent describes one live collection attempt.
type LoadEvent struct {
	ID        string         `json:"id"`
	Trigger   string         `json:"trigger"`
	StartedAt time.Time      `json:"startedAt"`
	Duration  time.Duration  `json:"durationNs"`
	OK        bool           `json:"ok"`
	Error     string         `json:"error,omitempty"`
	Points    map[string]int `json:"points,omitempty"`
}
