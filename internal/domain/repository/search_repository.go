package repository

import (
	"context"

	"farescan-service/internal/domain/entity"
)

// DeleteCounts reports how many rows of each kind a cascading search delete
// removed.
type DeleteCounts struct {
	Searches     int64
	Itineraries  int64
	Routes       int64
	Associations int64
}

// SearchRepository defines the interface for search snapshot persistence
type SearchRepository interface {
	// GetBySearchID finds a search by its provider-issued identifier.
	// Returns gorm.ErrRecordNotFound wrapped when no row exists.
	GetBySearchID(ctx context.Context, searchID string) (*entity.Search, error)

	// Create persists a search together with all of its itineraries, route
	// links, and pending route mutations in one transaction.
	Create(ctx context.Context, search *entity.Search) error

	// MarkAllInactive demotes every active search and reports how many rows
	// changed.
	MarkAllInactive(ctx context.Context) (int64, error)

	// ListInactive returns every search whose actual flag is false.
	ListInactive(ctx context.Context) ([]*entity.Search, error)

	// Delete removes the search, its itineraries, their route associations,
	// and any routes left unreferenced by every remaining itinerary, all in
	// one transaction.
	Delete(ctx context.Context, search *entity.Search) (DeleteCounts, error)
}
