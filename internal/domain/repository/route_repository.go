package repository

import (
	"context"

	"farescan-service/internal/domain/entity"
)

// RouteRepository defines the interface for canonical route segment lookups
type RouteRepository interface {
	// GetByRouteID finds the canonical segment row for a provider-issued
	// segment identifier. Returns gorm.ErrRecordNotFound wrapped when the
	// segment has never been seen.
	GetByRouteID(ctx context.Context, routeID string) (*entity.Route, error)
}
