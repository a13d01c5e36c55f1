package entity

import (
	"time"
)

// Itinerary is one priced trip proposal inside a Search: an outbound leg and
// an optional return. The provider itinerary identifier is unique only within
// its parent Search. Immutable after ingestion except for the two return-leg
// timestamps, which are filled in while route segments are attached.
type Itinerary struct {
	ID          uint   `gorm:"primaryKey"`
	SearchRef   uint   `gorm:"column:search_id;not null;index:idx_itinerary_search_itinerary,unique"`
	ItineraryID string `gorm:"column:itinerary_id;size:255;not null;index:idx_itinerary_search_itinerary,unique"`

	FlyFrom         string `gorm:"column:fly_from;size:3;not null"`
	FlyTo           string `gorm:"column:fly_to;size:3;not null"`
	CityFrom        string `gorm:"column:city_from;size:50;not null"`
	CityCodeFrom    string `gorm:"column:city_code_from;size:3;not null"`
	CityTo          string `gorm:"column:city_to;size:50;not null"`
	CityCodeTo      string `gorm:"column:city_code_to;size:3;not null"`
	CountryFromCode string `gorm:"column:country_from_code;size:2;not null"`
	CountryFromName string `gorm:"column:country_from_name;size:50;not null"`
	CountryToCode   string `gorm:"column:country_to_code;size:2;not null"`
	CountryToName   string `gorm:"column:country_to_name;size:50;not null"`

	LocalDeparture time.Time `gorm:"column:local_departure;not null"`
	LocalArrival   time.Time `gorm:"column:local_arrival;not null"`

	NightsInDest      int     `gorm:"column:nights_in_dest;not null"`
	Quality           float64 `gorm:"column:quality;not null"`
	Distance          float64 `gorm:"column:distance;not null"`
	DurationDeparture int     `gorm:"column:duration_departure;not null"`
	DurationReturn    int     `gorm:"column:duration_return;not null"`
	Price             float64 `gorm:"column:price;not null;index"`
	ConversionEUR     float64 `gorm:"column:conversion_eur;not null"`
	AvailabilitySeats *int    `gorm:"column:availability_seats"`
	Airlines          string  `gorm:"column:airlines;size:30;not null"`

	BookingToken                string `gorm:"column:booking_token;size:2048;not null"`
	DeepLink                    string `gorm:"column:deep_link;size:2048;not null"`
	FacilitatedBookingAvailable bool   `gorm:"column:facilitated_booking_available;not null"`
	PnrCount                    int    `gorm:"column:pnr_count;not null"`
	HasAirportChange            bool   `gorm:"column:has_airport_change;not null"`
	TechnicalStops              int    `gorm:"column:technical_stops;not null"`
	ThrowAwayTicketing          bool   `gorm:"column:throw_away_ticketing;not null"`
	HiddenCityTicketing         bool   `gorm:"column:hidden_city_ticketing;not null"`
	VirtualInterlining          bool   `gorm:"column:virtual_interlining;not null"`

	// Return-leg timestamps, aggregated from the return route segments: the
	// first return segment sets the departure, every return segment overwrites
	// the arrival. Nil for one-way itineraries.
	RLocalDeparture *time.Time `gorm:"column:r_local_departure"`
	RLocalArrival   *time.Time `gorm:"column:r_local_arrival"`

	Routes []*Route `gorm:"many2many:itinerary2route;"`
}

// TableName overrides the default table name
func (Itinerary) TableName() string {
	return "itinerary"
}
