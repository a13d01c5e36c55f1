package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farescan-service/internal/infrastructure/config"
	"farescan-service/internal/infrastructure/persistence"
	"farescan-service/internal/interface/repository"
	"farescan-service/internal/interface/snapshotfile"
	"farescan-service/internal/interface/tequila"
	"farescan-service/internal/usecase"
	"farescan-service/pkg/logger"
	"farescan-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting Farescan Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection and schema
	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	searchRepository := repository.NewGormSearchRepository(db)
	routeRepository := repository.NewGormRouteRepository(db)

	// Set up metrics
	m := metrics.NewMetrics("farescan")

	// Set up the ingestion engine
	routeCache := usecase.NewRouteCache(routeRepository)
	reconciler := usecase.NewReconciler(routeCache, log)
	ingestor := usecase.NewIngestor(searchRepository, reconciler, log, m)
	retention := usecase.NewRetention(searchRepository, log, m)

	// Set up the upstream client and snapshot persistence
	fareClient := tequila.NewClient(cfg.TequilaBaseURL, cfg.TequilaAPIKey, log)
	snapshotStore := snapshotfile.NewStore(cfg.SnapshotDir, log)

	scanner := usecase.NewScanner(fareClient, snapshotStore, ingestor, retention, usecase.ScannerConfig{
		Origin:           cfg.ScanOrigin,
		Months:           cfg.ScanMonths,
		MaxAttempts:      cfg.ScanMaxAttempts,
		RetryDelay:       cfg.ScanRetryDelay,
		RetryMaxDelay:    cfg.ScanRetryMax,
		NightsInDestFrom: cfg.NightsInDestFrom,
		NightsInDestTo:   cfg.NightsInDestTo,
		Limit:            cfg.SearchLimit,
		Currency:         cfg.Currency,
	}, log, m)

	// Run a scan cycle now and then on every interval tick
	go func() {
		runCycle(ctx, scanner, retention, cfg, log)

		ticker := time.NewTicker(cfg.ScanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("Scan loop stopped")
				return
			case <-ticker.C:
				runCycle(ctx, scanner, retention, cfg, log)
			}
		}
	}()

	// Set up HTTP server for metrics and health
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the scan loop

	log.Info("Farescan Service stopped")
}

func runCycle(ctx context.Context, scanner *usecase.Scanner, retention *usecase.Retention, cfg *config.Config, log logger.Logger) {
	if err := scanner.Scan(ctx); err != nil {
		log.Error("Scan cycle failed", "error", err)
		return
	}
	if cfg.PurgeInactive {
		if err := retention.PurgeInactive(ctx); err != nil {
			log.Error("Retention purge failed", "error", err)
		}
	}
}
