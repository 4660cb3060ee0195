package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"catalog_reviews/internal/app"
	"catalog_reviews/internal/domain"
	"catalog_reviews/internal/storage/memory"
)

// ---- fakes ----

// flakyStore fails writes (or reads) for selected keys.
type flakyStore struct {
	*memory.Store
	failRead  map[string]bool
	failWrite map[string]bool
	writes    atomic.Int64
}

func newFlaky() *flakyStore {
	return &flakyStore{Store: memory.New(), failRead: map[string]bool{}, failWrite: map[string]bool{}}
}

var errDisk = errors.New("disk full")

func (f *flakyStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failRead[key] {
		return nil, false, errDisk
	}
	return f.Store.Read(ctx, key)
}

func (f *flakyStore) Write(ctx context.Context, key string, value []byte) error {
	f.writes.Add(1)
	if f.failWrite[key] {
		return errDisk
	}
	return f.Store.Write(ctx, key, value)
}

// ---- helpers ----

var t0 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, st domain.Store, c domain.Catalog) {
	t.Helper()
	_, err := app.NewSeeder(st).Seed(context.Background(), c, true)
	require.NoError(t, err)
}

func newService(st domain.Store) (*app.ReviewService, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(t0)
	return app.NewReviewService(st, clock), clock
}

func author() *domain.User { return &domain.User{ID: "user1", Username: "techreviewer"} }

func draft(productID string, rating int) domain.ReviewDraft {
	return domain.ReviewDraft{ProductID: productID, Rating: rating, Title: "Title", Body: "Body text"}
}

func storedReviews(t *testing.T, st domain.Store) []domain.Review {
	t.Helper()
	svc := app.NewReviewService(st, nil)
	rs, err := svc.List(context.Background(), "", domain.FilterSort{SortBy: domain.SortOldest})
	require.NoError(t, err)
	return rs
}
