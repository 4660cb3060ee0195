// Package memory is a process-local blob store, used for development runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"catalog_reviews/internal/adapters/observability"
)

type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func New() *Store { return &Store{blobs: map[string][]byte{}} }

func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		observability.ObserveStore("memory", "read", "error", time.Since(start))
		return nil, false, err
	}
	s.mu.RLock()
	v, ok := s.blobs[key]
	s.mu.RUnlock()
	observability.ObserveStore("memory", "read", observability.ReadResult(ok, nil), time.Since(start))
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		observability.ObserveStore("memory", "write", "error", time.Since(start))
		return err
	}
	s.mu.Lock()
	s.blobs[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	observability.ObserveStore("memory", "write", "ok", time.Since(start))
	return nil
}

func (s *Store) Close() error { return nil }
