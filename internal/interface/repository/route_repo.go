package repository

import (
	"context"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRouteRepository implements the RouteRepository interface
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository
func NewGormRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &GormRouteRepository{
		db: db,
	}
}

// GetByRouteID finds the canonical segment row by provider identifier
func (r *GormRouteRepository) GetByRouteID(ctx context.Context, routeID string) (*entity.Route, error) {
	var route entity.Route
	result := r.db.WithContext(ctx).Where("route_id = ?", routeID).First(&route)
	if result.Error != nil {
		return nil, result.Error
	}
	return &route, nil
}
