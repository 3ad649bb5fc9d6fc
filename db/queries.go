package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Preset queries

//go:embed sql/insert_preset.sql
var InsertPresetSQL string

//go:embed sql/upsert_preset.sql
var UpsertPresetSQL string

//go:embed sql/select_presets.sql
var SelectPresetsSQL string

//go:embed sql/select_preset_by_name.sql
var SelectPresetByNameSQL string

//go:embed sql/delete_preset.sql
var DeletePresetSQL string

// Session history queries

//go:embed sql/insert_session_event.sql
var InsertSessionEventSQL string

//go:embed sql/select_recent_session_events.sql
var SelectRecentSessionEventsSQL string
