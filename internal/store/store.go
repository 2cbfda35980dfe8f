// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"options-tracker/internal/models"
)

// SnapshotStore defines the interface for snapshot persistence.
type SnapshotStore interface {
	// SaveSnapshot stores s, assigning an ID and capture time when unset.
	SaveSnapshot(ctx context.Context, s *models.Snapshot) error
	LatestSnapshot(ctx context.Context) (*models.Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*models.Snapshot, error)
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]models.SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, id string) error

	// Import bookkeeping
	GetLastImport() time.Time

	// Lifecycle
	Close() error
}

// SnapshotFilter represents filters for listing snapshots.
type SnapshotFilter struct {
	Source    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
