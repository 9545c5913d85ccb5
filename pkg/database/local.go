package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStore keeps each collection in its own <key>.json file under dataDir.
// Writes go through a temp file plus rename so a crash never leaves a
// half-written collection behind.
type LocalStore struct {
	dataDir string
	log     zerolog.Logger
}

// NewLocalStore creates a file-backed record store. If dataDir cannot be
// created (read-only filesystems), it falls back to a temp directory.
func NewLocalStore(dataDir string, log zerolog.Logger) *LocalStore {
	if dataDir == "" {
		dataDir = "./data"
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dataDir).Msg("failed to create data directory")
		dataDir = filepath.Join(os.TempDir(), "team-planner-data")
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Warn().Err(err).Msg("failed to create temp data directory")
			dataDir = "."
		}
	}

	return &LocalStore{dataDir: dataDir, log: log.With().Str("store", "local").Logger()}
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// GetAll reads the collection file into v. Missing or corrupted files are
// treated as an empty collection.
func (s *LocalStore) GetAll(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read collection %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		// Defensive defaulting: a corrupted collection reads as empty.
		s.log.Warn().Err(err).Str("collection", key).Msg("collection corrupted, treating as empty")
		return nil
	}
	return nil
}

// ReplaceAll writes v as the new content of the collection file.
func (s *LocalStore) ReplaceAll(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace collection %s: %w", key, err)
	}
	return nil
}

// Clear removes the collection file.
func (s *LocalStore) Clear(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear collection %s: %w", key, err)
	}
	return nil
}

// HealthCheck verifies the data directory is writable.
func (s *LocalStore) HealthCheck() error {
	probe := filepath.Join(s.dataDir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	return os.Remove(probe)
}

func (s *LocalStore) Close() error { return nil }
