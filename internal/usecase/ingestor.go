package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
	"farescan-service/pkg/metrics"

	"gorm.io/gorm"
)

// Ingestor normalizes one snapshot document into the relational model and
// commits the whole batch as a single transaction.
type Ingestor struct {
	searchRepo repository.SearchRepository
	reconciler *Reconciler
	logger     logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewIngestor creates a new ingestor
func NewIngestor(
	searchRepo repository.SearchRepository,
	reconciler *Reconciler,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Ingestor {
	return &Ingestor{
		searchRepo: searchRepo,
		reconciler: reconciler,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Ingest stores one snapshot. It returns false without error when the
// snapshot has no results or a search with the same identifier already
// exists, which makes re-imports and retries no-ops. A nil timestamp means
// the current time.
func (i *Ingestor) Ingest(ctx context.Context, snapshot *entity.Snapshot, sourceURL string, timestamp *time.Time, rangeStart, rangeEnd time.Time, actual bool) (bool, error) {
	started := i.now()

	if snapshot.Results == 0 {
		i.logger.Info("Skipping empty snapshot", "searchID", snapshot.SearchID)
		i.metrics.SnapshotsSkipped.Inc()
		return false, nil
	}

	_, err := i.searchRepo.GetBySearchID(ctx, snapshot.SearchID)
	if err == nil {
		i.logger.Info("Skipping already ingested snapshot", "searchID", snapshot.SearchID)
		i.metrics.SnapshotsSkipped.Inc()
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up search %s: %w", snapshot.SearchID, err)
	}

	ts := i.now()
	if timestamp != nil {
		ts = *timestamp
	}

	search := &entity.Search{
		SearchID:   snapshot.SearchID,
		URL:        sourceURL,
		Timestamp:  ts,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Results:    snapshot.Results,
		Actual:     actual,
	}

	var created, merged int
	for idx := range snapshot.Data {
		doc := &snapshot.Data[idx]
		itinerary, err := buildItinerary(doc)
		if err != nil {
			return false, err
		}
		search.Itineraries = append(search.Itineraries, itinerary)

		for rIdx := range doc.Route {
			isNew, err := i.reconciler.AttachRoute(ctx, itinerary, &doc.Route[rIdx])
			if err != nil {
				return false, err
			}
			if isNew {
				created++
			} else {
				merged++
			}
		}
	}

	if err := i.searchRepo.Create(ctx, search); err != nil {
		i.metrics.ErrorsCount.WithLabelValues("ingest").Inc()
		return false, err
	}

	i.metrics.SnapshotsIngested.Inc()
	i.metrics.ItinerariesIngested.Add(float64(len(search.Itineraries)))
	i.metrics.RoutesCreated.Add(float64(created))
	i.metrics.RoutesMerged.Add(float64(merged))
	i.metrics.IngestDuration.Observe(i.now().Sub(started).Seconds())

	i.logger.Info("Ingested snapshot",
		"searchID", snapshot.SearchID,
		"itineraries", len(search.Itineraries),
		"routesCreated", created,
		"routesMerged", merged,
		"actual", actual)

	return true, nil
}

// buildItinerary flattens one itinerary entry of a snapshot into its entity.
func buildItinerary(doc *entity.ItineraryDoc) (*entity.Itinerary, error) {
	localDeparture, err := entity.ParseProviderTime(doc.LocalDeparture)
	if err != nil {
		return nil, fmt.Errorf("failed to parse itinerary %s departure: %w", doc.ID, err)
	}
	localArrival, err := entity.ParseProviderTime(doc.LocalArrival)
	if err != nil {
		return nil, fmt.Errorf("failed to parse itinerary %s arrival: %w", doc.ID, err)
	}

	return &entity.Itinerary{
		ItineraryID:     doc.ID,
		FlyFrom:         doc.FlyFrom,
		FlyTo:           doc.FlyTo,
		CityFrom:        doc.CityFrom,
		CityCodeFrom:    doc.CityCodeFrom,
		CityTo:          doc.CityTo,
		CityCodeTo:      doc.CityCodeTo,
		CountryFromCode: doc.CountryFrom.Code,
		CountryFromName: doc.CountryFrom.Name,
		CountryToCode:   doc.CountryTo.Code,
		CountryToName:   doc.CountryTo.Name,
		LocalDeparture:  localDeparture,
		LocalArrival:    localArrival,

		NightsInDest:      doc.NightsInDest,
		Quality:           doc.Quality,
		Distance:          doc.Distance,
		DurationDeparture: doc.Duration.Departure,
		DurationReturn:    doc.Duration.Return,
		Price:             doc.Price,
		ConversionEUR:     doc.Conversion.EUR,
		AvailabilitySeats: doc.Availability.Seats,
		Airlines:          strings.Join(doc.Airlines, ","),

		BookingToken:                doc.BookingToken,
		DeepLink:                    doc.DeepLink,
		FacilitatedBookingAvailable: doc.FacilitatedBookingAvailable,
		PnrCount:                    doc.PnrCount,
		HasAirportChange:            doc.HasAirportChange,
		TechnicalStops:              doc.TechnicalStops,
		ThrowAwayTicketing:          doc.ThrowAwayTicketing,
		HiddenCityTicketing:         doc.HiddenCityTicketing,
		VirtualInterlining:          doc.VirtualInterlining,
	}, nil
}
