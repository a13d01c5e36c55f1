package main

import (
	"context"

	"farescan-service/internal/infrastructure/config"
	"farescan-service/internal/infrastructure/persistence"
	"farescan-service/internal/interface/repository"
	"farescan-service/internal/interface/snapshotfile"
	"farescan-service/internal/usecase"
	"farescan-service/pkg/logger"
	"farescan-service/pkg/metrics"
)

// One-shot tool: replays every snapshot file under SNAPSHOT_DIR into the
// store as historical, inactive data.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting snapshot re-import", "dir", cfg.SnapshotDir)

	db, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	searchRepository := repository.NewGormSearchRepository(db)
	routeRepository := repository.NewGormRouteRepository(db)

	m := metrics.NewMetrics("farescan_reimport")
	routeCache := usecase.NewRouteCache(routeRepository)
	reconciler := usecase.NewReconciler(routeCache, log)
	ingestor := usecase.NewIngestor(searchRepository, reconciler, log, m)

	snapshotStore := snapshotfile.NewStore(cfg.SnapshotDir, log)
	reimporter := usecase.NewReimporter(snapshotStore, ingestor, log)

	if err := reimporter.Run(context.Background()); err != nil {
		log.Fatal("Re-import failed", "error", err)
	}

	log.Info("Re-import complete")
}
