package testutil

import (
	"testing"

	"farescan-service/internal/infrastructure/persistence"
	"farescan-service/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a fresh in-memory database with the full schema migrated. Each
// test gets its own database; the single-connection limit keeps every query
// on the one in-memory instance.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := persistence.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// Logger returns a quiet logger for tests.
func Logger(tb testing.TB) logger.Logger {
	tb.Helper()
	return logger.NewLoggerWithLevel("fatal")
}
