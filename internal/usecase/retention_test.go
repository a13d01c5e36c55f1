package usecase

import (
	"context"
	"testing"

	"farescan-service/internal/domain/entity"
	ifrepo "farescan-service/internal/interface/repository"
	"farescan-service/internal/testutil"

	"gorm.io/gorm"
)

func newRetention(t *testing.T, db *gorm.DB) *Retention {
	t.Helper()
	return NewRetention(ifrepo.NewGormSearchRepository(db), testutil.Logger(t), testutil.Metrics(t))
}

func loadSearch(t *testing.T, db *gorm.DB, searchID string) *entity.Search {
	t.Helper()
	var search entity.Search
	if err := db.Where("search_id = ?", searchID).First(&search).Error; err != nil {
		t.Fatalf("load search %s: %v", searchID, err)
	}
	return &search
}

func TestMarkAllInactive(t *testing.T) {
	db := testutil.DB(t)
	ing := newIngestor(t, db)

	for _, id := range []string{"s-1", "s-2", "s-3"} {
		mustIngest(t, ing, testutil.Snapshot(id, testutil.ItineraryDoc("i-"+id,
			testutil.RouteDoc("r-"+id, 0, "2026-09-10T05:40:00.000Z", "2026-09-10T07:05:00.000Z"),
		)), true)
	}

	count, err := newRetention(t, db).MarkAllInactive(context.Background())
	if err != nil {
		t.Fatalf("MarkAllInactive: %v", err)
	}
	if count != 3 {
		t.Fatalf("demoted: got %d, want 3", count)
	}

	var active int64
	if err := db.Model(&entity.Search{}).Where("actual = ?", true).Count(&active).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	if active != 0 {
		t.Fatalf("active searches left: %d", active)
	}

	// Nothing left to demote on the second pass.
	count, err = newRetention(t, db).MarkAllInactive(context.Background())
	if err != nil {
		t.Fatalf("second MarkAllInactive: %v", err)
	}
	if count != 0 {
		t.Fatalf("second demotion: got %d, want 0", count)
	}
}

func TestDeleteSearchPreservesSharedRoutes(t *testing.T) {
	db := testutil.DB(t)

	shared := testutil.RouteDoc("r-shared", 0, "2026-09-10T05:40:00.000Z", "2026-09-10T07:05:00.000Z")
	own1 := testutil.RouteDoc("r-own1", 0, "2026-09-10T09:00:00.000Z", "2026-09-10T10:25:00.000Z")
	own2 := testutil.RouteDoc("r-own2", 0, "2026-09-10T12:00:00.000Z", "2026-09-10T13:25:00.000Z")

	mustIngest(t, newIngestor(t, db), testutil.Snapshot("s-1", testutil.ItineraryDoc("i-1", shared, own1)), true)
	mustIngest(t, newIngestor(t, db), testutil.Snapshot("s-2", testutil.ItineraryDoc("i-2", shared, own2)), true)

	retention := newRetention(t, db)

	counts, err := retention.DeleteSearch(context.Background(), loadSearch(t, db, "s-1"))
	if err != nil {
		t.Fatalf("DeleteSearch: %v", err)
	}
	if counts.Searches != 1 || counts.Itineraries != 1 || counts.Routes != 1 || counts.Associations != 2 {
		t.Fatalf("unexpected delete counts: %+v", counts)
	}

	// The shared segment must survive the first delete.
	if err := db.Where("route_id = ?", "r-shared").First(&entity.Route{}).Error; err != nil {
		t.Fatalf("shared route gone: %v", err)
	}
	if err := db.Where("route_id = ?", "r-own1").First(&entity.Route{}).Error; err == nil {
		t.Fatalf("exclusively owned route survived")
	}
	if got := countAssociations(t, db); got != 2 {
		t.Fatalf("surviving associations: got %d, want 2", got)
	}
	if err := db.Where("itinerary_id = ?", "i-2").First(&entity.Itinerary{}).Error; err != nil {
		t.Fatalf("other search's itinerary gone: %v", err)
	}

	// Deleting the second search removes the now-unshared segment too.
	counts, err = retention.DeleteSearch(context.Background(), loadSearch(t, db, "s-2"))
	if err != nil {
		t.Fatalf("second DeleteSearch: %v", err)
	}
	if counts.Routes != 2 {
		t.Fatalf("second delete routes: got %d, want 2", counts.Routes)
	}
	if got := countRows(t, db, &entity.Route{}); got != 0 {
		t.Fatalf("routes left: %d", got)
	}
	if got := countAssociations(t, db); got != 0 {
		t.Fatalf("associations left: %d", got)
	}
	if got := countRows(t, db, &entity.Itinerary{}); got != 0 {
		t.Fatalf("itineraries left: %d", got)
	}
	if got := countRows(t, db, &entity.Search{}); got != 0 {
		t.Fatalf("searches left: %d", got)
	}
}

func TestPurgeInactive(t *testing.T) {
	db := testutil.DB(t)
	ing := newIngestor(t, db)

	mustIngest(t, ing, testutil.Snapshot("s-old", testutil.ItineraryDoc("i-old",
		testutil.RouteDoc("r-old", 0, "2026-09-10T05:40:00.000Z", "2026-09-10T07:05:00.000Z"),
	)), false)
	mustIngest(t, ing, testutil.Snapshot("s-current", testutil.ItineraryDoc("i-current",
		testutil.RouteDoc("r-current", 0, "2026-09-11T05:40:00.000Z", "2026-09-11T07:05:00.000Z"),
	)), true)

	if err := newRetention(t, db).PurgeInactive(context.Background()); err != nil {
		t.Fatalf("PurgeInactive: %v", err)
	}

	if got := countRows(t, db, &entity.Search{}); got != 1 {
		t.Fatalf("searches: got %d, want 1", got)
	}
	if err := db.Where("search_id = ?", "s-current").First(&entity.Search{}).Error; err != nil {
		t.Fatalf("current search gone: %v", err)
	}
	if err := db.Where("route_id = ?", "r-old").First(&entity.Route{}).Error; err == nil {
		t.Fatalf("purged route survived")
	}
}
