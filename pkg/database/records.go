package database

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Collection keys. Each key holds one JSON-encoded document: an array for
// users/todos/organizations, a single object for the current session.
const (
	CollectionUsers         = "users"
	CollectionCurrentUser   = "currentUser"
	CollectionTodos         = "todos"
	CollectionOrganizations = "userOrganizations"
)

// RecordStore is the only persistence primitive: whole-document get and
// replace per named collection. There are no partial updates and no
// transactions; callers read the entire collection, mutate it in memory and
// write it back.
type RecordStore interface {
	// GetAll decodes the document stored under key into v. A missing or
	// unreadable document leaves v untouched and returns nil: corrupted
	// collections are treated as empty, not as fatal errors.
	GetAll(key string, v interface{}) error

	// ReplaceAll encodes v and atomically replaces the document under key.
	ReplaceAll(key string, v interface{}) error

	// Clear removes the document under key; missing keys are a no-op.
	Clear(key string) error

	HealthCheck() error
	Close() error
}

// StoreConfig selects and configures a record store backend.
type StoreConfig struct {
	Driver      string // "local", "postgres" or "sqlite"
	DataDir     string
	PostgresDSN string
	SQLitePath  string
}

// NewRecordStore picks a backend from the configured driver. The local
// file-per-collection store is the default.
func NewRecordStore(cfg StoreConfig, log zerolog.Logger) (RecordStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "local":
		return NewLocalStore(cfg.DataDir, log), nil
	case "postgres":
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("postgres driver selected but POSTGRES_DSN is empty")
		}
		return NewPostgresStore(cfg.PostgresDSN, log)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
