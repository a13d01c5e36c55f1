package usecase

import (
	"context"
	"fmt"

	"farescan-service/internal/domain/entity"
	"farescan-service/pkg/logger"
)

// Reconciler decides whether an incoming segment sighting is a new canonical
// route or a mutation of one already seen, and attaches the canonical row to
// the owning itinerary either way.
type Reconciler struct {
	cache  *RouteCache
	logger logger.Logger
}

// NewReconciler creates a new reconciler over the given cache
func NewReconciler(cache *RouteCache, logger logger.Logger) *Reconciler {
	return &Reconciler{
		cache:  cache,
		logger: logger,
	}
}

// AttachRoute processes one segment entry from a snapshot. It returns true
// when a new canonical route was created and false when the sighting was
// merged into an existing one.
func (r *Reconciler) AttachRoute(ctx context.Context, itinerary *entity.Itinerary, doc *entity.RouteDoc) (bool, error) {
	localDeparture, err := entity.ParseProviderTime(doc.LocalDeparture)
	if err != nil {
		return false, fmt.Errorf("failed to parse segment %s departure: %w", doc.ID, err)
	}
	localArrival, err := entity.ParseProviderTime(doc.LocalArrival)
	if err != nil {
		return false, fmt.Errorf("failed to parse segment %s arrival: %w", doc.ID, err)
	}

	incoming := &entity.Route{
		RouteID:             doc.ID,
		CombinationID:       doc.CombinationID,
		FlyFrom:             doc.FlyFrom,
		FlyTo:               doc.FlyTo,
		CityFrom:            doc.CityFrom,
		CityCodeFrom:        doc.CityCodeFrom,
		CityTo:              doc.CityTo,
		CityCodeTo:          doc.CityCodeTo,
		LocalDeparture:      localDeparture,
		LocalArrival:        localArrival,
		Airline:             doc.Airline,
		FlightNo:            doc.FlightNo,
		OperatingCarrier:    doc.OperatingCarrier,
		OperatingFlightNo:   doc.OperatingFlightNo,
		FareBasis:           doc.FareBasis,
		FareCategory:        doc.FareCategory,
		FareClasses:         doc.FareClasses,
		Return:              doc.Return,
		BagsRecheckRequired: doc.BagsRecheckRequired,
		ViConnection:        doc.ViConnection,
		Guarantee:           doc.Guarantee,
		Equipment:           doc.Equipment,
		VehicleType:         doc.VehicleType,
	}

	// Return legs feed the itinerary's aggregate timestamps: the first return
	// segment fixes the departure, each subsequent one overwrites the arrival.
	// Relies on the provider listing return segments in flight order.
	if doc.Return == 1 {
		if itinerary.RLocalDeparture == nil {
			itinerary.RLocalDeparture = &localDeparture
		}
		itinerary.RLocalArrival = &localArrival
	}

	canonical, err := r.cache.Resolve(ctx, incoming.RouteID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve segment %s: %w", incoming.RouteID, err)
	}

	if canonical == nil {
		itinerary.Routes = append(itinerary.Routes, incoming)
		r.cache.Remember(incoming)
		return true, nil
	}

	diff := canonical.Compare(incoming)
	if len(diff) > 0 {
		for field, change := range diff {
			canonical.ApplyChange(field, incoming)
			r.logger.Debug("Updated segment field",
				"routeID", canonical.RouteID,
				"field", field,
				"old", change.Old,
				"new", change.New)
		}
	}
	itinerary.Routes = append(itinerary.Routes, canonical)
	return false, nil
}
