package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SnapshotsIngested    prometheus.Counter
	SnapshotsSkipped     prometheus.Counter
	ItinerariesIngested  prometheus.Counter
	RoutesCreated        prometheus.Counter
	RoutesMerged         prometheus.Counter
	SearchesDeleted      prometheus.Counter
	ScanWindowsSucceeded prometheus.Counter
	ScanWindowsAbandoned prometheus.Counter
	IngestDuration       prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SnapshotsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_ingested_total",
			Help:      "The total number of snapshots committed to the store",
		}),
		SnapshotsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_skipped_total",
			Help:      "The total number of snapshots skipped as duplicates or empty",
		}),
		ItinerariesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_ingested_total",
			Help:      "The total number of itineraries ingested",
		}),
		RoutesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_created_total",
			Help:      "The total number of new canonical route segments",
		}),
		RoutesMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_merged_total",
			Help:      "The total number of segments merged into existing canonical rows",
		}),
		SearchesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_deleted_total",
			Help:      "The total number of searches removed by retention",
		}),
		ScanWindowsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_windows_succeeded_total",
			Help:      "The total number of month windows ingested successfully",
		}),
		ScanWindowsAbandoned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_windows_abandoned_total",
			Help:      "The total number of month windows abandoned after exhausting retries",
		}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time taken to ingest one snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
