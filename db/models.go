package db

import "time"

// Preset represents a row in the presets table.
type Preset struct {
	ID           int64
	Name         string
	TotalSeconds int
	CreatedAt    time.Time
}

// SessionEvent represents a row in the sessions table.
type SessionEvent struct {
	ID                int64
	SessionID         string
	ConfiguredSeconds int
	Event             string
	RemainingSeconds  int
	CreatedAt         time.Time
}
