// Package sqlite keeps the blob collections in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"catalog_reviews/internal/adapters/observability"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_blobs (
  k          TEXT    NOT NULL PRIMARY KEY,
  v          BLOB    NOT NULL,
  updated_at INTEGER NOT NULL
)`

const upsertSQL = `
INSERT INTO kv_blobs (k, v, updated_at) VALUES (?, ?, ?)
ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv_blobs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStore("sqlite", "read", "miss", time.Since(start))
		return nil, false, nil
	}
	observability.ObserveStore("sqlite", "read", observability.ReadResult(err == nil, err), time.Since(start))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, upsertSQL, key, value, time.Now().UTC().UnixMilli())
	observability.ObserveStore("sqlite", "write", observability.WriteResult(err), time.Since(start))
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
