package usecase

import (
	"context"
	"errors"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"

	"gorm.io/gorm"
)

// RouteCache resolves provider segment identifiers to their canonical rows.
// Misses fall through to the store and are remembered; entries are never
// invalidated, which is safe because one ingestion run owns the cache and the
// store transaction exclusively. Not safe for concurrent use.
type RouteCache struct {
	routeRepo repository.RouteRepository
	routes    map[string]*entity.Route
}

// NewRouteCache creates a fresh cache for one ingestion run or process.
func NewRouteCache(routeRepo repository.RouteRepository) *RouteCache {
	return &RouteCache{
		routeRepo: routeRepo,
		routes:    make(map[string]*entity.Route),
	}
}

// Resolve returns the canonical route for the identifier, or nil when no
// canonical row exists yet.
func (c *RouteCache) Resolve(ctx context.Context, routeID string) (*entity.Route, error) {
	if route, ok := c.routes[routeID]; ok {
		return route, nil
	}

	route, err := c.routeRepo.GetByRouteID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	c.routes[routeID] = route
	return route, nil
}

// Remember inserts or overwrites the cache entry for a route's identifier.
func (c *RouteCache) Remember(route *entity.Route) {
	c.routes[route.RouteID] = route
}
