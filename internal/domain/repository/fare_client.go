package repository

import (
	"context"
	"time"

	"farescan-service/internal/domain/entity"
)

// SearchParams tunes one upstream fare-search call.
type SearchParams struct {
	NightsInDestFrom int
	NightsInDestTo   int
	Limit            int
	Currency         string
}

// FareClient defines the interface to the upstream fare-search provider.
// StatusCode and SearchURL report on the most recent Search call and are only
// meaningful after it returns.
type FareClient interface {
	Search(ctx context.Context, origin string, rangeStart, rangeEnd time.Time, params SearchParams) (*entity.Snapshot, error)
	StatusCode() int
	SearchURL() string
}
