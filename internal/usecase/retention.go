package usecase

import (
	"context"
	"fmt"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
	"farescan-service/pkg/metrics"
)

// Retention demotes and removes whole snapshots while preserving route rows
// still shared with surviving searches.
type Retention struct {
	searchRepo repository.SearchRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewRetention creates a new retention manager
func NewRetention(searchRepo repository.SearchRepository, logger logger.Logger, metrics *metrics.Metrics) *Retention {
	return &Retention{
		searchRepo: searchRepo,
		logger:     logger,
		metrics:    metrics,
	}
}

// MarkAllInactive demotes every search currently marked as the current view.
// At most one logical snapshot stays current by convention: this runs before
// each new scan cycle marks its searches active.
func (r *Retention) MarkAllInactive(ctx context.Context) (int64, error) {
	count, err := r.searchRepo.MarkAllInactive(ctx)
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("mark_inactive").Inc()
		return 0, err
	}
	if count > 0 {
		r.logger.Info("Demoted active searches", "count", count)
	}
	return count, nil
}

// DeleteSearch removes one search with its itineraries, association rows, and
// any routes no remaining itinerary references.
func (r *Retention) DeleteSearch(ctx context.Context, search *entity.Search) (repository.DeleteCounts, error) {
	counts, err := r.searchRepo.Delete(ctx, search)
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("delete_search").Inc()
		return repository.DeleteCounts{}, fmt.Errorf("failed to delete search %s: %w", search.SearchID, err)
	}

	r.metrics.SearchesDeleted.Add(float64(counts.Searches))
	r.logger.Info("Deleted search",
		"searchID", search.SearchID,
		"itineraries", counts.Itineraries,
		"routes", counts.Routes,
		"associations", counts.Associations)
	return counts, nil
}

// PurgeInactive deletes every search whose actual flag is false.
func (r *Retention) PurgeInactive(ctx context.Context) error {
	searches, err := r.searchRepo.ListInactive(ctx)
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("purge_inactive").Inc()
		return fmt.Errorf("failed to list inactive searches: %w", err)
	}

	for _, search := range searches {
		if _, err := r.DeleteSearch(ctx, search); err != nil {
			return err
		}
	}

	if len(searches) > 0 {
		r.logger.Info("Purged inactive searches", "count", len(searches))
	}
	return nil
}
