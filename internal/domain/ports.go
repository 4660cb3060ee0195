package domain

import "context"

// Logical keys of the two persisted collections.
const (
	KeyReviews  = "reviews"
	KeyProducts = "products"
)

// Store is the durable key-value substrate. Values are JSON documents.
// Read reports ok=false when the key has never been written.
type Store interface {
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
}
