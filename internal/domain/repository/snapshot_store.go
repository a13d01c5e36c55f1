package repository

import (
	"time"

	"farescan-service/internal/domain/entity"
)

// SavedSnapshot is one previously persisted snapshot file, with the ingestion
// timestamp and month window recovered from its name.
type SavedSnapshot struct {
	Snapshot   *entity.Snapshot
	Timestamp  time.Time
	RangeStart time.Time
	RangeEnd   time.Time
}

// SnapshotStore defines the interface for raw snapshot persistence, used for
// audit and offline replay.
type SnapshotStore interface {
	// Save writes the raw snapshot document keyed by the current time and the
	// window's month. A no-op when no directory is configured.
	Save(snapshot *entity.Snapshot, rangeStart time.Time) error

	// LoadAll reads back every persisted snapshot in filename order.
	LoadAll() ([]SavedSnapshot, error)
}
