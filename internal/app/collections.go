package app

import (
	"context"
	"encoding/json"

	"catalog_reviews/internal/domain"
)

// loadCollection decodes the JSON array stored under key. A key that was never
// written decodes to an empty collection.
func loadCollection[T any](ctx context.Context, st domain.Store, key string) ([]T, error) {
	raw, ok, err := st.Read(ctx, key)
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Key: key, Err: err}
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &domain.StorageError{Op: "decode", Key: key, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// saveCollection replaces the whole blob under key (last writer wins).
func saveCollection[T any](ctx context.Context, st domain.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := st.Write(ctx, key, b); err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}
