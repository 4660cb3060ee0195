package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_reviews/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(rs []domain.Review) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func sample() []domain.Review {
	return []domain.Review{
		{ID: "a", Rating: 5, HelpfulCount: 15, CreatedAt: day("2024-01-15")},
		{ID: "b", Rating: 4, HelpfulCount: 8, CreatedAt: day("2024-01-20")},
		{ID: "c", Rating: 4, HelpfulCount: 12, CreatedAt: day("2024-01-18")},
		{ID: "d", Rating: 2, HelpfulCount: 8, CreatedAt: day("2024-01-18")},
	}
}

func TestView_SortKeys(t *testing.T) {
	cases := []struct {
		sort domain.SortKey
		want []string
	}{
		{domain.SortNewest, []string{"b", "c", "d", "a"}},
		{"", []string{"b", "c", "d", "a"}},
		{domain.SortOldest, []string{"a", "c", "d", "b"}},
		{domain.SortRatingHigh, []string{"a", "b", "c", "d"}},
		{domain.SortRatingLow, []string{"d", "b", "c", "a"}},
		{domain.SortHelpful, []string{"a", "c", "b", "d"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.sort), func(t *testing.T) {
			got := domain.View(sample(), domain.FilterSort{SortBy: tc.sort})
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestView_Stable(t *testing.T) {
	in := []domain.Review{
		{ID: "x", Rating: 3, CreatedAt: day("2024-02-01")},
		{ID: "y", Rating: 3, CreatedAt: day("2024-02-01")},
		{ID: "z", Rating: 3, CreatedAt: day("2024-02-01")},
	}
	for _, k := range []domain.SortKey{domain.SortNewest, domain.SortOldest, domain.SortRatingHigh, domain.SortRatingLow, domain.SortHelpful} {
		assert.Equal(t, []string{"x", "y", "z"}, ids(domain.View(in, domain.FilterSort{SortBy: k})), string(k))
	}
}

func TestView_Idempotent(t *testing.T) {
	fs := domain.FilterSort{SortBy: domain.SortNewest}
	once := domain.View(sample(), fs)
	twice := domain.View(once, fs)
	assert.Equal(t, ids(once), ids(twice))
	for i := 1; i < len(once); i++ {
		assert.False(t, once[i].CreatedAt.After(once[i-1].CreatedAt))
	}
}

func TestView_FilterExactBucket(t *testing.T) {
	in := append(sample(), domain.Review{ID: "e", Rating: 4.6, CreatedAt: day("2024-01-01")})
	got := domain.View(in, domain.FilterSort{Rating: ptr(4), SortBy: domain.SortOldest})
	assert.Equal(t, []string{"e", "c", "b"}, ids(got))

	assert.Empty(t, domain.View(in, domain.FilterSort{Rating: ptr(1)}))
}

func TestView_PreservesMultisetAndInput(t *testing.T) {
	in := sample()
	before := ids(in)
	got := domain.View(in, domain.FilterSort{SortBy: domain.SortHelpful})

	assert.ElementsMatch(t, before, ids(got))
	assert.Equal(t, before, ids(in), "input must not be reordered")
}

func TestView_Empty(t *testing.T) {
	got := domain.View(nil, domain.FilterSort{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSortKey(t *testing.T) {
	k, err := domain.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, domain.SortNewest, k)

	k, err = domain.ParseSortKey("rating-low")
	require.NoError(t, err)
	assert.Equal(t, domain.SortRatingLow, k)

	_, err = domain.ParseSortKey("best")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDistribute(t *testing.T) {
	var rs []domain.Review
	for _, r := range []float64{5, 5, 4, 3} {
		rs = append(rs, domain.Review{Rating: r})
	}
	d := domain.Distribute(rs)

	assert.Equal(t, 4, d.Total)
	require.Len(t, d.Buckets, 5)
	assert.Equal(t, 5, d.Buckets[0].Rating)
	assert.Equal(t, 1, d.Buckets[4].Rating)

	assert.Equal(t, domain.RatingBucketCount{Rating: 5, Count: 2, Percentage: 50}, d.Bucket(5))
	assert.Equal(t, domain.RatingBucketCount{Rating: 4, Count: 1, Percentage: 25}, d.Bucket(4))
	assert.Equal(t, domain.RatingBucketCount{Rating: 3, Count: 1, Percentage: 25}, d.Bucket(3))
	assert.Zero(t, d.Bucket(2).Percentage)
	assert.Zero(t, d.Bucket(1).Count)
}

func TestDistribute_EmptyAndFractional(t *testing.T) {
	d := domain.Distribute(nil)
	assert.Zero(t, d.Total)
	for _, b := range d.Buckets {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
	}

	d = domain.Distribute([]domain.Review{{Rating: 4.9}, {Rating: 1.2}})
	assert.Equal(t, 1, d.Bucket(4).Count)
	assert.Equal(t, 1, d.Bucket(1).Count)
	assert.Zero(t, d.Bucket(5).Count)
}
