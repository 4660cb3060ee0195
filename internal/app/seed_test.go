package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_reviews/internal/app"
	"catalog_reviews/internal/domain"
	"catalog_reviews/internal/storage/memory"
)

func TestSeeder_OnlyFillsAbsentKeys(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Write(ctx, domain.KeyReviews, []byte(`[]`)))

	res, err := app.NewSeeder(st).Seed(ctx, catalogFixture(), false)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Products)
	assert.Zero(t, res.Reviews, "existing reviews blob must be kept")
	assert.Empty(t, storedReviews(t, st))

	res, err = app.NewSeeder(st).Seed(ctx, catalogFixture(), false)
	require.NoError(t, err)
	assert.Zero(t, res.Products)
}

func TestSeeder_Force(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Write(ctx, domain.KeyReviews, []byte(`[]`)))

	res, err := app.NewSeeder(st).Seed(ctx, catalogFixture(), true)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Reviews)
	assert.Len(t, storedReviews(t, st), 4)
}

func TestSeeder_PropagatesStorageError(t *testing.T) {
	st := newFlaky()
	st.failWrite[domain.KeyProducts] = true
	_, err := app.NewSeeder(st).Seed(context.Background(), catalogFixture(), false)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
