package snapshotfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
)

const (
	stampLayout = "20060102150405"
	monthLayout = "200601"
)

// Store persists raw snapshot documents under a directory, one file per
// snapshot, named <ingestion stamp>-<window month>.json so re-import can
// recover both without opening the file.
type Store struct {
	dir    string
	logger logger.Logger
	now    func() time.Time
}

// NewStore creates a new snapshot file store; an empty dir disables saving.
func NewStore(dir string, logger logger.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

var _ repository.SnapshotStore = (*Store)(nil)

// Save writes the raw snapshot document for the given month window.
func (s *Store) Save(snapshot *entity.Snapshot, rangeStart time.Time) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", s.now().Format(stampLayout), rangeStart.Format(monthLayout))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snapshot.SearchID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	s.logger.Info("Saved snapshot", "file", name, "searchID", snapshot.SearchID)
	return nil
}

// LoadAll reads back every persisted snapshot in filename order, recovering
// the ingestion timestamp and month window from each name.
func (s *Store) LoadAll() ([]repository.SavedSnapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var saved []repository.SavedSnapshot
	for _, name := range names {
		timestamp, rangeStart, ok := parseName(name)
		if !ok {
			s.logger.Warn("Skipping snapshot file with unexpected name", "file", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file %s: %w", name, err)
		}
		var snapshot entity.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot file %s: %w", name, err)
		}

		saved = append(saved, repository.SavedSnapshot{
			Snapshot:   &snapshot,
			Timestamp:  timestamp,
			RangeStart: rangeStart,
			RangeEnd:   rangeStart.AddDate(0, 1, -1),
		})
	}
	return saved, nil
}

// parseName splits <stamp>-<month>.json into the ingestion timestamp and the
// first day of the window month.
func parseName(name string) (time.Time, time.Time, bool) {
	base := strings.TrimSuffix(name, ".json")
	parts := strings.SplitN(base, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	timestamp, err := time.Parse(stampLayout, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	rangeStart, err := time.Parse("20060102", parts[1]+"01")
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return timestamp, rangeStart, true
}
