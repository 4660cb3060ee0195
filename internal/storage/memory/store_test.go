package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_reviews/internal/storage/memory"
)

func TestStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, ok, err := st.Read(ctx, "reviews")
	require.NoError(t, err)
	assert.False(t, ok)

	in := []byte(`[{"id":"1"}]`)
	require.NoError(t, st.Write(ctx, "reviews", in))
	in[0] = 'X' // caller buffer must not alias the stored value

	got, ok, err := st.Read(ctx, "reviews")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	got[0] = 'Y'
	again, _, _ := st.Read(ctx, "reviews")
	assert.Equal(t, byte('['), again[0])
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := memory.New()
	assert.ErrorIs(t, st.Write(ctx, "k", []byte("[]")), context.Canceled)
	_, _, err := st.Read(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
