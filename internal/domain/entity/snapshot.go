package entity

import (
	"time"
)

// ProviderTimeLayout is how the fare provider encodes local timestamps in
// snapshot documents.
const ProviderTimeLayout = "2006-01-02T15:04:05.000Z"

// ParseProviderTime parses a provider-formatted local timestamp.
func ParseProviderTime(value string) (time.Time, error) {
	return time.Parse(ProviderTimeLayout, value)
}

// Snapshot is one raw fare-search result document as returned by the upstream
// provider and persisted for replay.
type Snapshot struct {
	SearchID string         `json:"search_id"`
	Currency string         `json:"currency"`
	Results  int            `json:"_results"`
	Data     []ItineraryDoc `json:"data"`
}

// ItineraryDoc is one priced trip proposal inside a snapshot document.
type ItineraryDoc struct {
	ID           string     `json:"id"`
	FlyFrom      string     `json:"flyFrom"`
	FlyTo        string     `json:"flyTo"`
	CityFrom     string     `json:"cityFrom"`
	CityCodeFrom string     `json:"cityCodeFrom"`
	CityTo       string     `json:"cityTo"`
	CityCodeTo   string     `json:"cityCodeTo"`
	CountryFrom  CountryDoc `json:"countryFrom"`
	CountryTo    CountryDoc `json:"countryTo"`

	LocalDeparture string `json:"local_departure"`
	LocalArrival   string `json:"local_arrival"`

	NightsInDest int             `json:"nightsInDest"`
	Quality      float64         `json:"quality"`
	Distance     float64         `json:"distance"`
	Duration     DurationDoc     `json:"duration"`
	Price        float64         `json:"price"`
	Conversion   ConversionDoc   `json:"conversion"`
	Availability AvailabilityDoc `json:"availability"`
	Airlines     []string        `json:"airlines"`

	BookingToken                string `json:"booking_token"`
	DeepLink                    string `json:"deep_link"`
	FacilitatedBookingAvailable bool   `json:"facilitated_booking_available"`
	PnrCount                    int    `json:"pnr_count"`
	HasAirportChange            bool   `json:"has_airport_change"`
	TechnicalStops              int    `json:"technical_stops"`
	ThrowAwayTicketing          bool   `json:"throw_away_ticketing"`
	HiddenCityTicketing         bool   `json:"hidden_city_ticketing"`
	VirtualInterlining          bool   `json:"virtual_interlining"`

	Route []RouteDoc `json:"route"`
}

// RouteDoc is one flight segment inside an itinerary entry.
type RouteDoc struct {
	ID            string `json:"id"`
	CombinationID string `json:"combination_id"`
	FlyFrom       string `json:"flyFrom"`
	FlyTo         string `json:"flyTo"`
	CityFrom      string `json:"cityFrom"`
	CityCodeFrom  string `json:"cityCodeFrom"`
	CityTo        string `json:"cityTo"`
	CityCodeTo    string `json:"cityCodeTo"`

	LocalDeparture string `json:"local_departure"`
	LocalArrival   string `json:"local_arrival"`

	Airline           string `json:"airline"`
	FlightNo          int    `json:"flight_no"`
	OperatingCarrier  string `json:"operating_carrier"`
	OperatingFlightNo string `json:"operating_flight_no"`
	FareBasis         string `json:"fare_basis"`
	FareCategory      string `json:"fare_category"`
	FareClasses       string `json:"fare_classes"`

	// 0 for outbound segments, 1 for return segments.
	Return int `json:"return"`

	BagsRecheckRequired bool    `json:"bags_recheck_required"`
	ViConnection        bool    `json:"vi_connection"`
	Guarantee           bool    `json:"guarantee"`
	Equipment           *string `json:"equipment"`
	VehicleType         string  `json:"vehicle_type"`
}

// CountryDoc is a nested country descriptor.
type CountryDoc struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DurationDoc carries leg durations in seconds.
type DurationDoc struct {
	Departure int `json:"departure"`
	Return    int `json:"return"`
	Total     int `json:"total"`
}

// ConversionDoc carries the price converted into other currencies.
type ConversionDoc struct {
	EUR float64 `json:"EUR"`
}

// AvailabilityDoc carries seat availability; the provider omits it at times.
type AvailabilityDoc struct {
	Seats *int `json:"seats"`
}
