package persistence

import (
	"fmt"

	"farescan-service/internal/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDB opens the canonical-entity store and migrates the schema.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Search{},
		&entity.Itinerary{},
		&entity.Route{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
