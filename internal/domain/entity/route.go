package entity

import (
	"fmt"
	"time"
)

// Route is one canonical flight segment, globally deduplicated by the
// provider-issued RouteID. At most one row exists per RouteID at any time;
// every itinerary that includes the segment links to the same row.
type Route struct {
	ID            uint   `gorm:"primaryKey"`
	RouteID       string `gorm:"column:route_id;size:26;not null;uniqueIndex"`
	CombinationID string `gorm:"column:combination_id;size:24;not null"`

	FlyFrom      string `gorm:"column:fly_from;size:3;not null"`
	FlyTo        string `gorm:"column:fly_to;size:3;not null"`
	CityFrom     string `gorm:"column:city_from;size:50;not null"`
	CityCodeFrom string `gorm:"column:city_code_from;size:3;not null"`
	CityTo       string `gorm:"column:city_to;size:50;not null"`
	CityCodeTo   string `gorm:"column:city_code_to;size:3;not null"`

	// Scheduled timestamps as first observed. Never overwritten by later
	// sightings of the same segment.
	LocalDeparture time.Time `gorm:"column:local_departure;not null"`
	LocalArrival   time.Time `gorm:"column:local_arrival;not null"`

	Airline           string `gorm:"column:airline;size:2;not null"`
	FlightNo          int    `gorm:"column:flight_no;not null"`
	OperatingCarrier  string `gorm:"column:operating_carrier;size:2;not null"`
	OperatingFlightNo string `gorm:"column:operating_flight_no;size:4;not null"`

	FareBasis    string `gorm:"column:fare_basis;size:10;not null"`
	FareCategory string `gorm:"column:fare_category;size:1;not null"`
	FareClasses  string `gorm:"column:fare_classes;size:1;not null"`

	Return              int     `gorm:"column:return;not null"`
	BagsRecheckRequired bool    `gorm:"column:bags_recheck_required;not null"`
	ViConnection        bool    `gorm:"column:vi_connection;not null"`
	Guarantee           bool    `gorm:"column:guarantee;not null"`
	Equipment           *string `gorm:"column:equipment;size:4"`
	VehicleType         string  `gorm:"column:vehicle_type;size:8;not null"`

	Itineraries []*Itinerary `gorm:"many2many:itinerary2route;"`
}

// TableName overrides the default table name
func (Route) TableName() string {
	return "route"
}

// FieldChange records one differing attribute between the canonical route and
// an incoming sighting, both rendered as strings for logging.
type FieldChange struct {
	Old string
	New string
}

// Compare diffs the canonical route against an incoming sighting of the same
// segment, field by field. The scheduled departure/arrival timestamps are
// deliberately out of scope: once observed they are kept as-is.
func (r *Route) Compare(incoming *Route) map[string]FieldChange {
	diff := make(map[string]FieldChange)

	cmpStr := func(name, old, new string) {
		if old != new {
			diff[name] = FieldChange{Old: old, New: new}
		}
	}
	cmpInt := func(name string, old, new int) {
		if old != new {
			diff[name] = FieldChange{Old: fmt.Sprint(old), New: fmt.Sprint(new)}
		}
	}
	cmpBool := func(name string, old, new bool) {
		if old != new {
			diff[name] = FieldChange{Old: fmt.Sprint(old), New: fmt.Sprint(new)}
		}
	}

	cmpStr("combination_id", r.CombinationID, incoming.CombinationID)
	cmpStr("fly_from", r.FlyFrom, incoming.FlyFrom)
	cmpStr("fly_to", r.FlyTo, incoming.FlyTo)
	cmpStr("city_from", r.CityFrom, incoming.CityFrom)
	cmpStr("city_code_from", r.CityCodeFrom, incoming.CityCodeFrom)
	cmpStr("city_to", r.CityTo, incoming.CityTo)
	cmpStr("city_code_to", r.CityCodeTo, incoming.CityCodeTo)
	cmpStr("airline", r.Airline, incoming.Airline)
	cmpInt("flight_no", r.FlightNo, incoming.FlightNo)
	cmpStr("operating_carrier", r.OperatingCarrier, incoming.OperatingCarrier)
	cmpStr("operating_flight_no", r.OperatingFlightNo, incoming.OperatingFlightNo)
	cmpStr("fare_basis", r.FareBasis, incoming.FareBasis)
	cmpStr("fare_category", r.FareCategory, incoming.FareCategory)
	cmpStr("fare_classes", r.FareClasses, incoming.FareClasses)
	cmpInt("return", r.Return, incoming.Return)
	cmpBool("bags_recheck_required", r.BagsRecheckRequired, incoming.BagsRecheckRequired)
	cmpBool("vi_connection", r.ViConnection, incoming.ViConnection)
	cmpBool("guarantee", r.Guarantee, incoming.Guarantee)
	cmpStr("equipment", strOrEmpty(r.Equipment), strOrEmpty(incoming.Equipment))
	cmpStr("vehicle_type", r.VehicleType, incoming.VehicleType)

	return diff
}

// ApplyChange copies the named attribute from the incoming sighting onto the
// canonical route. The field set mirrors Compare; unknown names are ignored so
// that the two stay a closed contract.
func (r *Route) ApplyChange(field string, incoming *Route) {
	switch field {
	case "combination_id":
		r.CombinationID = incoming.CombinationID
	case "fly_from":
		r.FlyFrom = incoming.FlyFrom
	case "fly_to":
		r.FlyTo = incoming.FlyTo
	case "city_from":
		r.CityFrom = incoming.CityFrom
	case "city_code_from":
		r.CityCodeFrom = incoming.CityCodeFrom
	case "city_to":
		r.CityTo = incoming.CityTo
	case "city_code_to":
		r.CityCodeTo = incoming.CityCodeTo
	case "airline":
		r.Airline = incoming.Airline
	case "flight_no":
		r.FlightNo = incoming.FlightNo
	case "operating_carrier":
		r.OperatingCarrier = incoming.OperatingCarrier
	case "operating_flight_no":
		r.OperatingFlightNo = incoming.OperatingFlightNo
	case "fare_basis":
		r.FareBasis = incoming.FareBasis
	case "fare_category":
		r.FareCategory = incoming.FareCategory
	case "fare_classes":
		r.FareClasses = incoming.FareClasses
	case "return":
		r.Return = incoming.Return
	case "bags_recheck_required":
		r.BagsRecheckRequired = incoming.BagsRecheckRequired
	case "vi_connection":
		r.ViConnection = incoming.ViConnection
	case "guarantee":
		r.Guarantee = incoming.Guarantee
	case "equipment":
		r.Equipment = incoming.Equipment
	case "vehicle_type":
		r.VehicleType = incoming.VehicleType
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
