package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"catalog_reviews/internal/adapters/observability"
)

// Repo stores each logical key as one row of kv_blobs.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate creates the blob table when it does not exist yet.
func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createBlobsSQL)
	return err
}

func (r *Repo) Read(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	var v []byte
	err := r.db.QueryRowContext(ctx, readBlobSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStore("mysql", "read", "miss", time.Since(start))
		return nil, false, nil
	}
	observability.ObserveStore("mysql", "read", observability.ReadResult(err == nil, err), time.Since(start))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Repo) Write(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := r.db.ExecContext(ctx, upsertBlobSQL, key, string(value))
	observability.ObserveStore("mysql", "write", observability.WriteResult(err), time.Since(start))
	return err
}

func (r *Repo) Close() error { return r.db.Close() }
