package tui

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/user/countdown-timer-cli/countdown"
	"github.com/user/countdown-timer-cli/db"
)

// HistoryRecorder appends countdown transitions to the sessions table.
// Ticks and pending-input edits are not recorded.
type HistoryRecorder struct {
	db         *sql.DB
	sessionID  string
	configured int
	logger     *slog.Logger
}

// NewHistoryRecorder creates a recorder for one TUI run with a fresh session ID.
func NewHistoryRecorder(database *sql.DB, configuredSeconds int, logger *slog.Logger) *HistoryRecorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HistoryRecorder{
		db:         database,
		sessionID:  uuid.NewString(),
		configured: configuredSeconds,
		logger:     logger,
	}
}

// SessionID returns the ID shared by every event of this run.
func (r *HistoryRecorder) SessionID() string {
	return r.sessionID
}

// Record stores the snapshot if its event is worth keeping. Failures are
// logged and otherwise ignored; history never interrupts the countdown.
func (r *HistoryRecorder) Record(snap countdown.Snapshot) {
	if r == nil || r.db == nil {
		return
	}
	switch snap.Event {
	case countdown.EventSet, countdown.EventStart, countdown.EventPause,
		countdown.EventReset, countdown.EventExpired:
	default:
		return
	}

	_, err := db.InsertSessionEvent(r.db, db.SessionEvent{
		SessionID:         r.sessionID,
		ConfiguredSeconds: r.configured,
		Event:             string(snap.Event),
		RemainingSeconds:  snap.Remaining,
	})
	if err != nil {
		r.logger.Warn("recording history failed", "event", snap.Event, "err", err)
	}
}
