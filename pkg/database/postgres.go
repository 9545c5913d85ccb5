package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// PostgresStore keeps every collection as one row in a single key/document
// table, preserving the whole-collection replace semantics of the record
// store on top of a real database.
type PostgresStore struct {
	db  *sql.DB
	log zerolog.Logger
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
    key        TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresStore connects to PostgreSQL and ensures the records table
// exists.
func NewPostgresStore(dsn string, log zerolog.Logger) (*PostgresStore, error) {
	// Sanitize DSN to avoid stray CR/LF from env values
	dsn = strings.TrimSpace(dsn)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Small pool: every access is a single-row read or upsert.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &PostgresStore{db: db, log: log.With().Str("store", "postgres").Logger()}, nil
}

// GetAll loads the document stored under key into v.
func (s *PostgresStore) GetAll(key string, v interface{}) error {
	var doc []byte
	err := s.db.QueryRow(`SELECT doc FROM records WHERE key = $1`, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", key, err)
	}

	if err := json.Unmarshal(doc, v); err != nil {
		s.log.Warn().Err(err).Str("collection", key).Msg("collection corrupted, treating as empty")
		return nil
	}
	return nil
}

// ReplaceAll upserts the document under key.
func (s *PostgresStore) ReplaceAll(key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	_, err = s.db.Exec(`
        INSERT INTO records (key, doc, updated_at) VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, doc)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}

// Clear deletes the document under key.
func (s *PostgresStore) Clear(key string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("clear collection %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) HealthCheck() error { return s.db.Ping() }

func (s *PostgresStore) Close() error { return s.db.Close() }
