package usecase

import (
	"context"
	"testing"

	"farescan-service/internal/domain/entity"
	ifrepo "farescan-service/internal/interface/repository"
	"farescan-service/internal/testutil"
)

func TestRouteCacheMissAndStoreFallback(t *testing.T) {
	db := testutil.DB(t)
	cache := NewRouteCache(ifrepo.NewGormRouteRepository(db))
	ctx := context.Background()

	route, err := cache.Resolve(ctx, "r-unknown")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if route != nil {
		t.Fatalf("expected not-found, got %+v", route)
	}

	persisted := &entity.Route{RouteID: "r-1", FlyFrom: "BUD", FlyTo: "WAW", Airline: "LO", VehicleType: "aircraft"}
	if err := db.Create(persisted).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}

	route, err = cache.Resolve(ctx, "r-1")
	if err != nil {
		t.Fatalf("Resolve after seed: %v", err)
	}
	if route == nil || route.RouteID != "r-1" {
		t.Fatalf("store-backed miss failed: %+v", route)
	}
}

func TestRouteCacheServesHitsWithoutStore(t *testing.T) {
	db := testutil.DB(t)
	cache := NewRouteCache(ifrepo.NewGormRouteRepository(db))
	ctx := context.Background()

	remembered := &entity.Route{RouteID: "r-mem", FlyFrom: "BUD", FlyTo: "WAW"}
	cache.Remember(remembered)

	// Never persisted; a hit must come straight from the cache.
	route, err := cache.Resolve(ctx, "r-mem")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if route != remembered {
		t.Fatalf("expected the remembered instance, got %+v", route)
	}
}

func TestRouteCacheCachesStoreLookups(t *testing.T) {
	db := testutil.DB(t)
	cache := NewRouteCache(ifrepo.NewGormRouteRepository(db))
	ctx := context.Background()

	if err := db.Create(&entity.Route{RouteID: "r-1", FlyFrom: "BUD", FlyTo: "WAW"}).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}

	first, err := cache.Resolve(ctx, "r-1")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := cache.Resolve(ctx, "r-1")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first != second {
		t.Fatalf("second hit returned a different instance")
	}
}
