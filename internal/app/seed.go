package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"catalog_reviews/internal/domain"
)

type Seeder struct {
	store domain.Store
}

func NewSeeder(st domain.Store) *Seeder { return &Seeder{store: st} }

// SeedResult reports how many items were written per key; zero means the key
// already held data and was left alone.
type SeedResult struct {
	Products int
	Reviews  int
}

// Seed writes the catalog into keys that have never been written. With force
// it overwrites both keys unconditionally.
func (s *Seeder) Seed(ctx context.Context, c domain.Catalog, force bool) (SeedResult, error) {
	var res SeedResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := seedKey(gctx, s.store, domain.KeyProducts, c.Products, force)
		res.Products = n
		return err
	})
	g.Go(func() error {
		n, err := seedKey(gctx, s.store, domain.KeyReviews, c.Reviews, force)
		res.Reviews = n
		return err
	})
	if err := g.Wait(); err != nil {
		return SeedResult{}, err
	}
	log.Info().Int("products", res.Products).Int("reviews", res.Reviews).Bool("force", force).Msg("seed completed")
	return res, nil
}

func seedKey[T any](ctx context.Context, st domain.Store, key string, items []T, force bool) (int, error) {
	if !force {
		_, ok, err := st.Read(ctx, key)
		if err != nil {
			return 0, &domain.StorageError{Op: "read", Key: key, Err: err}
		}
		if ok {
			log.Debug().Str("key", key).Msg("seed skipped; key already present")
			return 0, nil
		}
	}
	if err := saveCollection(ctx, st, key, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
