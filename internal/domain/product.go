package domain

import "time"

// Product is owned by the external catalog. AverageRating and TotalReviews are
// derived fields maintained by ApplyNewRating.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	Price         float64   `json:"price"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	Features      []string  `json:"features"`
	Brand         string    `json:"brand"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Catalog is the full persisted state: both blobs in one value (used for seeding).
type Catalog struct {
	Products []Product
	Reviews  []Review
}

// Dashboard is the catalog-wide summary shown on the overview page.
type Dashboard struct {
	TotalProducts int       `json:"totalProducts"`
	TotalReviews  int       `json:"totalReviews"`
	AverageRating float64   `json:"averageRating"` // mean of product averages, one decimal
	TopRated      int       `json:"topRated"`      // products with AverageRating >= TopRatedThreshold
	TopProducts   []Product `json:"topProducts"`
	RecentReviews []Review  `json:"recentReviews"`
}

const (
	TopRatedThreshold = 4.5
	DashboardListSize = 5
)
