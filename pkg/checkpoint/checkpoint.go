package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/logger"
	"followsnap/pkg/snapshot"
)

// TimestampLayout names output files so that runs sort chronologically
const TimestampLayout = "20060102_150405"

// Manager owns the snapshot file of one collection run. Every Save
// replaces the whole file, so after any checkpoint the file holds exactly
// the master set as it was at that moment.
type Manager struct {
	path   string
	logger logger.Logger
}

// NewManager creates a manager writing to {dir}/{prefix}_YYYYMMDD_HHMMSS.txt
// where the timestamp is the run's start time
func NewManager(dir, prefix string, startedAt time.Time, log logger.Logger) (*Manager, error) {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "followers"
	}
	if log == nil {
		log = logger.GetLogger()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errs.Wrap(errs.ErrorTypePersistence, err, "failed to create output directory")
	}

	name := fmt.Sprintf("%s_%s.txt", prefix, startedAt.Format(TimestampLayout))
	return &Manager{
		path:   filepath.Join(dir, name),
		logger: log,
	}, nil
}

// NewManagerAt creates a manager for an explicit file path
func NewManagerAt(path string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{path: path, logger: log}
}

// Path returns the file every checkpoint is written to
func (m *Manager) Path() string {
	return m.path
}

// Save atomically replaces the snapshot file with the contents of set
func (m *Manager) Save(set *snapshot.Set) error {
	if err := snapshot.Write(m.path, set); err != nil {
		m.logger.ErrorWithFields("checkpoint write failed", map[string]interface{}{
			"path":  m.path,
			"error": err.Error(),
		})
		return errs.Wrap(errs.ErrorTypePersistence, err, "failed to write checkpoint")
	}

	m.logger.DebugWithFields("checkpoint saved", map[string]interface{}{
		"path":  m.path,
		"total": set.Len(),
	})
	return nil
}

// LoadSeed reads an earlier snapshot file to seed a resumed run
func LoadSeed(path string, log logger.Logger) (*snapshot.Set, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	set, err := snapshot.Read(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypePersistence, err, fmt.Sprintf("failed to load snapshot %s", path))
	}

	log.InfoWithFields("snapshot loaded", map[string]interface{}{
		"path":  path,
		"total": set.Len(),
	})
	return set, nil
}
