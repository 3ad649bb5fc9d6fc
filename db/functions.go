package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrPresetNotFound is returned when no preset has the requested name.
var ErrPresetNotFound = errors.New("preset not found")

// InsertPreset inserts a new preset and returns its ID. Names are unique.
func InsertPreset(db *sql.DB, name string, totalSeconds int) (int64, error) {
	result, err := db.Exec(InsertPresetSQL, name, totalSeconds)
	if err != nil {
		return 0, fmt.Errorf("insert preset: %w", err)
	}
	return result.LastInsertId()
}

// UpsertPreset inserts a preset or replaces the duration of an existing one.
func UpsertPreset(db *sql.DB, name string, totalSeconds int) error {
	_, err := db.Exec(UpsertPresetSQL, name, totalSeconds)
	if err != nil {
		return fmt.Errorf("upsert preset: %w", err)
	}
	return nil
}

// SelectPresets returns all presets ordered by name.
func SelectPresets(db *sql.DB) ([]Preset, error) {
	rows, err := db.Query(SelectPresetsSQL)
	if err != nil {
		return nil, fmt.Errorf("select presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.TotalSeconds, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// SelectPresetByName returns the preset with the given name, or ErrPresetNotFound.
func SelectPresetByName(db *sql.DB, name string) (*Preset, error) {
	var p Preset
	err := db.QueryRow(SelectPresetByNameSQL, name).Scan(&p.ID, &p.Name, &p.TotalSeconds, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("select preset: %w", err)
	}
	return &p, nil
}

// DeletePreset removes the preset with the given name, or returns ErrPresetNotFound.
func DeletePreset(db *sql.DB, name string) error {
	result, err := db.Exec(DeletePresetSQL, name)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return nil
}

// InsertSessionEvent appends an event to the countdown history.
func InsertSessionEvent(db *sql.DB, e SessionEvent) (int64, error) {
	result, err := db.Exec(InsertSessionEventSQL, e.SessionID, e.ConfiguredSeconds, e.Event, e.RemainingSeconds)
	if err != nil {
		return 0, fmt.Errorf("insert session event: %w", err)
	}
	return result.LastInsertId()
}

// SelectRecentSessionEvents returns up to limit events, newest first.
func SelectRecentSessionEvents(db *sql.DB, limit int) ([]SessionEvent, error) {
	rows, err := db.Query(SelectRecentSessionEventsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ConfiguredSeconds, &e.Event, &e.RemainingSeconds, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
