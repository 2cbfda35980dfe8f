package models

import "time"

// Snapshot is one captured read of the activity API: the pending orders and
// executed history delivered together.
type Snapshot struct {
	ID         string
	CapturedAt time.Time
	Source     string // file name or "stdin"
	Orders     []RawOrder
	Histories  []RawHistoryRecord
}

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	ID         string
	CapturedAt time.Time
	Source     string
	Orders     int
	Histories  int
}
