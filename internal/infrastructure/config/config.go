// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN string

	// Upstream fare-search provider
	TequilaBaseURL string
	TequilaAPIKey  string

	// Scan
	ScanOrigin       string
	ScanMonths       int
	ScanMaxAttempts  int
	ScanRetryDelay   time.Duration
	ScanRetryMax     time.Duration
	ScanInterval     time.Duration
	NightsInDestFrom int
	NightsInDestTo   int
	SearchLimit      int
	Currency         string

	// Raw snapshot persistence; empty disables saving
	SnapshotDir string

	// Retention
	PurgeInactive bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("DATABASE_DSN", "host=localhost user=farescan dbname=farescan sslmode=disable"),

		TequilaBaseURL: getEnv("TEQUILA_BASE_URL", "https://api.tequila.kiwi.com"),
		TequilaAPIKey:  getEnv("TEQUILA_API_KEY", ""),

		ScanOrigin:       getEnv("SCAN_ORIGIN", "BUD"),
		ScanMonths:       getEnvAsInt("SCAN_MONTHS", 13),
		ScanMaxAttempts:  getEnvAsInt("SCAN_MAX_ATTEMPTS", 10),
		ScanRetryDelay:   time.Duration(getEnvAsInt("SCAN_RETRY_DELAY", 5)) * time.Second,
		ScanRetryMax:     time.Duration(getEnvAsInt("SCAN_RETRY_MAX_DELAY", 60)) * time.Second,
		ScanInterval:     time.Duration(getEnvAsInt("SCAN_INTERVAL_HOURS", 24)) * time.Hour,
		NightsInDestFrom: getEnvAsInt("NIGHTS_IN_DST_FROM", 2),
		NightsInDestTo:   getEnvAsInt("NIGHTS_IN_DST_TO", 3),
		SearchLimit:      getEnvAsInt("SEARCH_LIMIT", 1000),
		Currency:         getEnv("CURRENCY", "EUR"),

		SnapshotDir: getEnv("SNAPSHOT_DIR", "tmp"),

		PurgeInactive: getEnvAsBool("RETENTION_PURGE", false),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
