package domain

// ApplyNewRating folds one more rating into the product's running average.
// The new mean is derived from the previous state, never recounted from the
// review list, so a product without reviews simply takes the new rating.
func ApplyNewRating(p Product, rating int) (Product, error) {
	if !ValidRating(rating) {
		return Product{}, ErrInvalidRating
	}
	n := p.TotalReviews
	if n < 0 {
		n = 0
	}
	avg := p.AverageRating
	if n == 0 {
		avg = 0
	}
	p.AverageRating = (avg*float64(n) + float64(rating)) / float64(n+1)
	p.TotalReviews = n + 1
	if len(p.Features) > 0 {
		p.Features = append([]string(nil), p.Features...)
	}
	return p, nil
}
