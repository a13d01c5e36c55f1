package usecase

import (
	"context"
	"net/http"
	"time"

	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
	"farescan-service/pkg/metrics"
)

// ScannerConfig tunes one scan cycle.
type ScannerConfig struct {
	Origin           string
	Months           int
	MaxAttempts      int
	RetryDelay       time.Duration
	RetryMaxDelay    time.Duration
	NightsInDestFrom int
	NightsInDestTo   int
	Limit            int
	Currency         string
}

// Scanner walks a rolling horizon of month windows, fetching a snapshot for
// each from the upstream provider and feeding it to the ingestor. Windows
// that exhaust their retry budget are skipped, not fatal.
type Scanner struct {
	client    repository.FareClient
	snapshots repository.SnapshotStore
	ingestor  *Ingestor
	retention *Retention
	config    ScannerConfig
	logger    logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewScanner creates a new scan orchestrator
func NewScanner(
	client repository.FareClient,
	snapshots repository.SnapshotStore,
	ingestor *Ingestor,
	retention *Retention,
	config ScannerConfig,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Scanner {
	return &Scanner{
		client:    client,
		snapshots: snapshots,
		ingestor:  ingestor,
		retention: retention,
		config:    config,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Scan runs one full cycle over the configured horizon. The previous current
// view is demoted first, so the searches ingested here become the only active
// ones.
func (s *Scanner) Scan(ctx context.Context) error {
	s.logger.Info("Starting scan",
		"origin", s.config.Origin,
		"months", s.config.Months)

	if _, err := s.retention.MarkAllInactive(ctx); err != nil {
		return err
	}

	rangeStart := s.now().Truncate(24 * time.Hour)
	for window := 0; window < s.config.Months; window++ {
		// Last day of the month rangeStart falls in.
		rangeEnd := firstOfNextMonth(rangeStart).AddDate(0, 0, -1)

		s.scanWindow(ctx, rangeStart, rangeEnd)

		rangeStart = firstOfNextMonth(rangeStart)
	}

	s.logger.Info("Scan finished")
	return nil
}

// scanWindow fetches and ingests one month window with bounded retries and a
// capped, attempt-scaled backoff.
func (s *Scanner) scanWindow(ctx context.Context, rangeStart, rangeEnd time.Time) {
	params := repository.SearchParams{
		NightsInDestFrom: s.config.NightsInDestFrom,
		NightsInDestTo:   s.config.NightsInDestTo,
		Limit:            s.config.Limit,
		Currency:         s.config.Currency,
	}

	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		s.logger.Info("Searching fares",
			"rangeStart", rangeStart.Format("2006-01-02"),
			"rangeEnd", rangeEnd.Format("2006-01-02"),
			"attempt", attempt)

		snapshot, err := s.client.Search(ctx, s.config.Origin, rangeStart, rangeEnd, params)
		if err != nil {
			s.logger.Error("Fare search failed",
				"status", s.client.StatusCode(),
				"attempt", attempt,
				"error", err)
			s.metrics.ErrorsCount.WithLabelValues("search").Inc()
			s.sleep(s.backoff(attempt))
			continue
		}

		// Persist the raw document for replay before any ingestion outcome.
		if err := s.snapshots.Save(snapshot, rangeStart); err != nil {
			s.logger.Error("Failed to save snapshot", "error", err)
			s.metrics.ErrorsCount.WithLabelValues("save_snapshot").Inc()
		}

		if s.client.StatusCode() == http.StatusOK {
			timestamp := s.now()
			if _, err := s.ingestor.Ingest(ctx, snapshot, s.client.SearchURL(), &timestamp, rangeStart, rangeEnd, true); err != nil {
				s.logger.Error("Ingestion failed",
					"searchID", snapshot.SearchID,
					"error", err)
				s.metrics.ErrorsCount.WithLabelValues("ingest").Inc()
				s.sleep(s.backoff(attempt))
				continue
			}
			s.metrics.ScanWindowsSucceeded.Inc()
			return
		}

		s.sleep(s.backoff(attempt))
	}

	s.logger.Warn("Abandoning window after exhausting retries",
		"rangeStart", rangeStart.Format("2006-01-02"),
		"attempts", s.config.MaxAttempts)
	s.metrics.ScanWindowsAbandoned.Inc()
}

// backoff grows linearly with the attempt count, capped at RetryMaxDelay.
func (s *Scanner) backoff(attempt int) time.Duration {
	delay := time.Duration(attempt) * s.config.RetryDelay
	if delay > s.config.RetryMaxDelay {
		delay = s.config.RetryMaxDelay
	}
	return delay
}

// firstOfNextMonth returns midnight on the first day of the month after t, in
// t's location.
func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}
