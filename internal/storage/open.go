// Package storage selects the blob store backend named by the configuration.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "catalog_reviews/internal/adapters/redis"
	"catalog_reviews/internal/domain"
	"catalog_reviews/internal/shared"
	"catalog_reviews/internal/storage/memory"
	mysqlrepo "catalog_reviews/internal/storage/mysql"
	"catalog_reviews/internal/storage/sqlite"
)

// Backend is a Store that owns a connection.
type Backend interface {
	domain.Store
	io.Closer
}

// Open connects to the backend selected by cfg.StoreDriver and verifies it is reachable.
func Open(ctx context.Context, cfg shared.Config) (Backend, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("memory store selected; data is lost on exit")
		return memory.New(), nil

	case "sqlite":
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ok")
		return st, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		repo := mysqlrepo.New(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("database connection ok")
		return repo, nil

	case "redis":
		st := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisPrefix)
		if err := st.Ping(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis store ok")
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
