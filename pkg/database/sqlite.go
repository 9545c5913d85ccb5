package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// record is the gorm model backing the SQLite store: one row per collection.
type record struct {
	Key       string `gorm:"primaryKey;column:key"`
	Doc       string `gorm:"column:doc"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "records" }

// SQLiteStore is the embedded, zero-config backend: the same key/document
// layout as the Postgres store inside a single SQLite file.
type SQLiteStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(path string, zlog zerolog.Logger) (*SQLiteStore, error) {
	if path == "" {
		path = "team_planner.db"
	}

	if err := ensureDirForSQLite(path); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate records table: %w", err)
	}

	return &SQLiteStore{db: db, log: zlog.With().Str("store", "sqlite").Logger()}, nil
}

// ensureDirForSQLite creates the parent dir for the SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

// GetAll loads the document stored under key into v.
func (s *SQLiteStore) GetAll(key string, v interface{}) error {
	var rec record
	err := s.db.Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(rec.Doc), v); err != nil {
		s.log.Warn().Err(err).Str("collection", key).Msg("collection corrupted, treating as empty")
		return nil
	}
	return nil
}

// ReplaceAll upserts the document under key.
func (s *SQLiteStore) ReplaceAll(key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	rec := record{Key: key, Doc: string(doc), UpdatedAt: time.Now()}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}

// Clear deletes the document under key.
func (s *SQLiteStore) Clear(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&record{}).Error; err != nil {
		return fmt.Errorf("clear collection %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
