package app

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"catalog_reviews/internal/domain"
)

// List returns the product's reviews filtered and ordered by fs.
// An empty productID lists reviews across the whole catalog.
func (s *ReviewService) List(ctx context.Context, productID string, fs domain.FilterSort) ([]domain.Review, error) {
	rs, err := s.productReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return domain.View(rs, fs), nil
}

// Distribution summarises the product's reviews per star bucket.
func (s *ReviewService) Distribution(ctx context.Context, productID string) (domain.Distribution, error) {
	rs, err := s.productReviews(ctx, productID)
	if err != nil {
		return domain.Distribution{}, err
	}
	return domain.Distribute(rs), nil
}

func (s *ReviewService) productReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	all, err := loadCollection[domain.Review](ctx, s.store, domain.KeyReviews)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return all, nil
	}
	out := make([]domain.Review, 0, len(all))
	for _, r := range all {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

// CatalogService serves read-only product views and the dashboard summary.
type CatalogService struct {
	store domain.Store
}

func NewCatalogService(st domain.Store) *CatalogService {
	return &CatalogService{store: st}
}

// ListProducts returns every product, or only those in category (case-insensitive).
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	ps, err := loadCollection[domain.Product](ctx, s.store, domain.KeyProducts)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return ps, nil
	}
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	ps, err := loadCollection[domain.Product](ctx, s.store, domain.KeyProducts)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOf(ps, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	return ps[i], nil
}

func (s *CatalogService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	ps, err := loadCollection[domain.Product](ctx, s.store, domain.KeyProducts)
	if err != nil {
		return domain.Dashboard{}, err
	}
	rs, err := loadCollection[domain.Review](ctx, s.store, domain.KeyReviews)
	if err != nil {
		return domain.Dashboard{}, err
	}

	d := domain.Dashboard{TotalProducts: len(ps), TotalReviews: len(rs)}
	if len(ps) > 0 {
		sum := decimal.Zero
		for _, p := range ps {
			sum = sum.Add(decimal.NewFromFloat(p.AverageRating))
			if p.AverageRating >= domain.TopRatedThreshold {
				d.TopRated++
			}
		}
		d.AverageRating = sum.Div(decimal.NewFromInt(int64(len(ps)))).Round(1).InexactFloat64()
	}

	top := slices.Clone(ps)
	slices.SortStableFunc(top, func(a, b domain.Product) int {
		switch {
		case a.AverageRating > b.AverageRating:
			return -1
		case a.AverageRating < b.AverageRating:
			return 1
		}
		return 0
	})
	d.TopProducts = head(top, domain.DashboardListSize)
	d.RecentReviews = head(domain.View(rs, domain.FilterSort{SortBy: domain.SortNewest}), domain.DashboardListSize)
	return d, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		return []T{}
	}
	return items
}
