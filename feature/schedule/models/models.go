package models

import "time"

// Run statuses persisted with each record. A run that ends with zero
// mutations is still StatusOK; StatusFailed is reserved for runs that
// aborted.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRecord is one reconciliation run persisted for history.
type RunRecord struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// RunID is the unique identifier assigned to the run.
	RunID string `gorm:"size:36;uniqueIndex" json:"run_id"`

	// Trigger records what started the run (cron, manual, cli).
	Trigger string `gorm:"size:16" json:"trigger"`

	// Status is ok or failed.
	Status string `gorm:"size:16;index" json:"status"`

	// Error holds the abort reason for failed runs.
	Error string `gorm:"size:512" json:"error,omitempty"`

	// Classification counts.
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Migrated  int `json:"migrated"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`

	// Observability counts.
	Collisions int `json:"collisions"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`

	// WindowStart and WindowEnd bound the run window.
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// DurationMs is the wall time of the run.
	DurationMs int64 `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
}
