package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/testutil"

	"gorm.io/gorm"
)

func TestGetBySearchIDNotFound(t *testing.T) {
	repo := NewGormSearchRepository(testutil.DB(t))

	_, err := repo.GetBySearchID(context.Background(), "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func TestCreatePersistsAggregate(t *testing.T) {
	db := testutil.DB(t)
	repo := NewGormSearchRepository(db)

	departure := time.Date(2026, 9, 10, 5, 40, 0, 0, time.UTC)
	arrival := departure.Add(85 * time.Minute)
	search := &entity.Search{
		SearchID:   "s-1",
		URL:        "https://example.test/q",
		Timestamp:  time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		RangeStart: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Results:    1,
		Actual:     true,
		Itineraries: []*entity.Itinerary{{
			ItineraryID:    "i-1",
			FlyFrom:        "BUD",
			FlyTo:          "WAW",
			LocalDeparture: departure,
			LocalArrival:   arrival,
			Routes: []*entity.Route{{
				RouteID:        "r-1",
				FlyFrom:        "BUD",
				FlyTo:          "WAW",
				LocalDeparture: departure,
				LocalArrival:   arrival,
			}},
		}},
	}

	if err := repo.Create(context.Background(), search); err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := repo.GetBySearchID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetBySearchID: %v", err)
	}
	if loaded.Results != 1 || !loaded.Actual {
		t.Fatalf("unexpected search: %+v", loaded)
	}

	var itinerary entity.Itinerary
	if err := db.Preload("Routes").Where("itinerary_id = ?", "i-1").First(&itinerary).Error; err != nil {
		t.Fatalf("load itinerary: %v", err)
	}
	if itinerary.SearchRef != loaded.ID {
		t.Fatalf("itinerary not linked to search")
	}
	if len(itinerary.Routes) != 1 || itinerary.Routes[0].RouteID != "r-1" {
		t.Fatalf("routes not linked: %+v", itinerary.Routes)
	}
}

func TestCreateUpdatesMergedRoutes(t *testing.T) {
	db := testutil.DB(t)
	repo := NewGormSearchRepository(db)

	departure := time.Date(2026, 9, 10, 5, 40, 0, 0, time.UTC)
	canonical := &entity.Route{
		RouteID:        "r-1",
		FlyFrom:        "BUD",
		FlyTo:          "WAW",
		FareClasses:    "O",
		LocalDeparture: departure,
		LocalArrival:   departure.Add(85 * time.Minute),
	}
	if err := db.Create(canonical).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}

	// The reconciler mutates the canonical row in memory; Create has to flush
	// that mutation alongside the new search.
	canonical.FareClasses = "Y"
	search := &entity.Search{
		SearchID:   "s-1",
		Timestamp:  time.Now(),
		RangeStart: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Results:    1,
		Itineraries: []*entity.Itinerary{{
			ItineraryID:    "i-1",
			FlyFrom:        "BUD",
			FlyTo:          "WAW",
			LocalDeparture: departure,
			LocalArrival:   departure.Add(85 * time.Minute),
			Routes:         []*entity.Route{canonical},
		}},
	}
	if err := repo.Create(context.Background(), search); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var routeCount int64
	if err := db.Model(&entity.Route{}).Count(&routeCount).Error; err != nil {
		t.Fatalf("count routes: %v", err)
	}
	if routeCount != 1 {
		t.Fatalf("routes: got %d, want 1", routeCount)
	}

	var route entity.Route
	if err := db.Where("route_id = ?", "r-1").First(&route).Error; err != nil {
		t.Fatalf("load route: %v", err)
	}
	if route.FareClasses != "Y" {
		t.Fatalf("merged mutation not flushed: %q", route.FareClasses)
	}
}
