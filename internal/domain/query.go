package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortRatingHigh SortKey = "rating-high"
	SortRatingLow  SortKey = "rating-low"
	SortHelpful    SortKey = "helpful"
)

var sortKeys = []SortKey{SortNewest, SortOldest, SortRatingHigh, SortRatingLow, SortHelpful}

// ParseSortKey maps a query value onto the enumeration; "" means newest.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &ValidationError{Field: "sort", Reason: fmt.Sprintf("must be one of %v", sortKeys)}
}

// FilterSort is the caller-selected view over a review collection.
// A nil Rating keeps every review; an empty SortBy sorts newest first.
type FilterSort struct {
	Rating *int    `json:"rating,omitempty"`
	SortBy SortKey `json:"sortBy"`
}

// RatingBucket floors a rating to the star bucket it is counted under.
func RatingBucket(r float64) int { return int(math.Floor(r)) }

// View filters and stably sorts reviews. The input slice is left untouched.
func View(reviews []Review, fs FilterSort) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if fs.Rating != nil && RatingBucket(r.Rating) != *fs.Rating {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, comparator(fs.SortBy))
	return out
}

func comparator(k SortKey) func(a, b Review) int {
	switch k {
	case SortOldest:
		return func(a, b Review) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortRatingHigh:
		return func(a, b Review) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortRatingLow:
		return func(a, b Review) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortHelpful:
		return func(a, b Review) int { return cmp.Compare(b.HelpfulCount, a.HelpfulCount) }
	default:
		return func(a, b Review) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

type RatingBucketCount struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution lists buckets from MaxRating down to MinRating.
type Distribution struct {
	Total   int                 `json:"total"`
	Buckets []RatingBucketCount `json:"buckets"`
}

// Distribute counts reviews per star bucket. Percentages are of the whole
// collection and are zero for an empty one.
func Distribute(reviews []Review) Distribution {
	counts := make(map[int]int, MaxRating)
	for _, r := range reviews {
		counts[RatingBucket(r.Rating)]++
	}
	d := Distribution{Total: len(reviews), Buckets: make([]RatingBucketCount, 0, MaxRating)}
	for star := MaxRating; star >= MinRating; star-- {
		b := RatingBucketCount{Rating: star, Count: counts[star]}
		if d.Total > 0 {
			b.Percentage = float64(b.Count) / float64(d.Total) * 100
		}
		d.Buckets = append(d.Buckets, b)
	}
	return d
}

// Bucket returns the count for one star value.
func (d Distribution) Bucket(star int) RatingBucketCount {
	for _, b := range d.Buckets {
		if b.Rating == star {
			return b
		}
	}
	return RatingBucketCount{Rating: star}
}
