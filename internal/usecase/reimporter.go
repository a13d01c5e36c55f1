package usecase

import (
	"context"

	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
)

// Reimporter replays previously persisted snapshot files as historical data.
// Ingestion idempotence makes re-running it over the same directory safe.
type Reimporter struct {
	snapshots repository.SnapshotStore
	ingestor  *Ingestor
	logger    logger.Logger
}

// NewReimporter creates a new reimporter
func NewReimporter(snapshots repository.SnapshotStore, ingestor *Ingestor, logger logger.Logger) *Reimporter {
	return &Reimporter{
		snapshots: snapshots,
		ingestor:  ingestor,
		logger:    logger,
	}
}

// Run ingests every saved snapshot with its original timestamp and window,
// marked inactive so replays never displace the current view.
func (r *Reimporter) Run(ctx context.Context) error {
	saved, err := r.snapshots.LoadAll()
	if err != nil {
		return err
	}

	r.logger.Info("Re-importing snapshots", "count", len(saved))

	var imported int
	for _, item := range saved {
		ok, err := r.ingestor.Ingest(ctx, item.Snapshot, "", &item.Timestamp, item.RangeStart, item.RangeEnd, false)
		if err != nil {
			return err
		}
		if ok {
			imported++
		}
	}

	r.logger.Info("Re-import finished", "imported", imported, "skipped", len(saved)-imported)
	return nil
}
