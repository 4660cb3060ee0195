package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog_reviews/internal/adapters/observability"
)

// Store keeps each logical key as a plain redis string under prefix.
// Values never expire.
type Store struct {
	c      *redis.Client
	prefix string
}

func New(addr, pass string, db int, prefix string) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), prefix)
}

func NewWithClient(c *redis.Client, prefix string) *Store {
	return &Store{c: c, prefix: prefix}
}

func (r *Store) key(k string) string { return r.prefix + k }

func (r *Store) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	v, err := r.c.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveStore("redis", "read", "miss", time.Since(start))
		return nil, false, nil
	}
	observability.ObserveStore("redis", "read", observability.ReadResult(err == nil, err), time.Since(start))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Store) Write(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := r.c.Set(ctx, r.key(key), value, 0).Err()
	observability.ObserveStore("redis", "write", observability.WriteResult(err), time.Since(start))
	return err
}

func (r *Store) Close() error { return r.c.Close() }
