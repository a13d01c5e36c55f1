package repository

import (
	"context"
	"fmt"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSearchRepository implements the SearchRepository interface
type GormSearchRepository struct {
	db *gorm.DB
}

// NewGormSearchRepository creates a new GORM search repository
func NewGormSearchRepository(db *gorm.DB) repository.SearchRepository {
	return &GormSearchRepository{
		db: db,
	}
}

// GetBySearchID finds a search by its provider-issued identifier
func (r *GormSearchRepository) GetBySearchID(ctx context.Context, searchID string) (*entity.Search, error) {
	var search entity.Search
	result := r.db.WithContext(ctx).Where("search_id = ?", searchID).First(&search)
	if result.Error != nil {
		return nil, result.Error
	}
	return &search, nil
}

// Create persists the search aggregate in one transaction. Routes already
// carrying a primary key are canonical rows mutated by the reconciler, so the
// session saves associations fully instead of skipping existing ones.
func (r *GormSearchRepository) Create(ctx context.Context, search *entity.Search) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{FullSaveAssociations: true})
		if err := session.Create(search).Error; err != nil {
			return fmt.Errorf("failed to create search %s: %w", search.SearchID, err)
		}
		return nil
	})
}

// MarkAllInactive demotes every active search
func (r *GormSearchRepository) MarkAllInactive(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Search{}).
		Where("actual = ?", true).
		Update("actual", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to demote active searches: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListInactive returns every search whose actual flag is false
func (r *GormSearchRepository) ListInactive(ctx context.Context) ([]*entity.Search, error) {
	var searches []*entity.Search
	result := r.db.WithContext(ctx).Where("actual = ?", false).Find(&searches)
	if result.Error != nil {
		return nil, result.Error
	}
	return searches, nil
}

// Delete removes a search and everything it exclusively owns: association
// rows first, then itineraries, then routes no remaining association row
// references, then the search row. Routes still linked from other searches
// survive. All four steps run in one transaction.
func (r *GormSearchRepository) Delete(ctx context.Context, search *entity.Search) (repository.DeleteCounts, error) {
	var counts repository.DeleteCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itineraryIDs []uint
		if err := tx.Model(&entity.Itinerary{}).
			Where("search_id = ?", search.ID).
			Pluck("id", &itineraryIDs).Error; err != nil {
			return fmt.Errorf("failed to collect itineraries: %w", err)
		}

		if len(itineraryIDs) > 0 {
			result := tx.Exec("DELETE FROM itinerary2route WHERE itinerary_id IN ?", itineraryIDs)
			if result.Error != nil {
				return fmt.Errorf("failed to delete associations: %w", result.Error)
			}
			counts.Associations = result.RowsAffected

			result = tx.Where("id IN ?", itineraryIDs).Delete(&entity.Itinerary{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete itineraries: %w", result.Error)
			}
			counts.Itineraries = result.RowsAffected
		}

		// Orphan check runs against the full association table, not just the
		// rows removed above.
		result := tx.Exec("DELETE FROM route WHERE id NOT IN (SELECT route_id FROM itinerary2route)")
		if result.Error != nil {
			return fmt.Errorf("failed to delete orphaned routes: %w", result.Error)
		}
		counts.Routes = result.RowsAffected

		result = tx.Delete(&entity.Search{}, search.ID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete search %s: %w", search.SearchID, result.Error)
		}
		counts.Searches = result.RowsAffected

		return nil
	})
	if err != nil {
		return repository.DeleteCounts{}, err
	}
	return counts, nil
}
