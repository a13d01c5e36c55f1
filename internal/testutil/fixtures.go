package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"farescan-service/internal/domain/entity"
	"farescan-service/pkg/metrics"
)

var metricsSeq int64

// Metrics returns a metrics set registered under a unique namespace, since
// the default prometheus registry rejects duplicate collectors.
func Metrics(tb testing.TB) *metrics.Metrics {
	tb.Helper()
	return metrics.NewMetrics(fmt.Sprintf("test%d", atomic.AddInt64(&metricsSeq, 1)))
}

// Snapshot builds a snapshot document around the given itinerary entries.
func Snapshot(searchID string, itineraries ...entity.ItineraryDoc) *entity.Snapshot {
	return &entity.Snapshot{
		SearchID: searchID,
		Currency: "EUR",
		Results:  len(itineraries),
		Data:     itineraries,
	}
}

// ItineraryDoc builds an itinerary entry with plausible Budapest-Tokyo data
// and the given segments.
func ItineraryDoc(id string, routes ...entity.RouteDoc) entity.ItineraryDoc {
	seats := 4
	return entity.ItineraryDoc{
		ID:           id,
		FlyFrom:      "BUD",
		FlyTo:        "NRT",
		CityFrom:     "Budapest",
		CityCodeFrom: "BUD",
		CityTo:       "Tokyo",
		CityCodeTo:   "TYO",
		CountryFrom:  entity.CountryDoc{Code: "HU", Name: "Hungary"},
		CountryTo:    entity.CountryDoc{Code: "JP", Name: "Japan"},

		LocalDeparture: "2026-09-10T05:40:00.000Z",
		LocalArrival:   "2026-09-11T09:15:00.000Z",

		NightsInDest: 3,
		Quality:      612.5,
		Distance:     9150,
		Duration:     entity.DurationDoc{Departure: 48900, Return: 51300},
		Price:        512,
		Conversion:   entity.ConversionDoc{EUR: 512},
		Availability: entity.AvailabilityDoc{Seats: &seats},
		Airlines:     []string{"LO", "JL"},

		BookingToken: "token-" + id,
		DeepLink:     "https://example.test/book/" + id,
		PnrCount:     1,
		Route:        routes,
	}
}

// RouteDoc builds a segment entry; ret is 1 for return legs.
func RouteDoc(id string, ret int, departure, arrival string) entity.RouteDoc {
	equipment := "789"
	return entity.RouteDoc{
		ID:            id,
		CombinationID: id + "C",
		FlyFrom:       "BUD",
		FlyTo:         "WAW",
		CityFrom:      "Budapest",
		CityCodeFrom:  "BUD",
		CityTo:        "Warsaw",
		CityCodeTo:    "WAW",

		LocalDeparture: departure,
		LocalArrival:   arrival,

		Airline:           "LO",
		FlightNo:          332,
		OperatingCarrier:  "LO",
		OperatingFlightNo: "332",
		FareBasis:         "OLOWBUD",
		FareCategory:      "M",
		FareClasses:       "O",
		Return:            ret,
		Guarantee:         true,
		Equipment:         &equipment,
		VehicleType:       "aircraft",
	}
}
