package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"catalog_reviews/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
	Reviews  []seedReview  `yaml:"reviews"`
}

type seedProduct struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	Category      string    `yaml:"category"`
	Image         string    `yaml:"image"`
	Price         float64   `yaml:"price"`
	AverageRating float64   `yaml:"averageRating"`
	TotalReviews  int       `yaml:"totalReviews"`
	Features      []string  `yaml:"features"`
	Brand         string    `yaml:"brand"`
	CreatedAt     time.Time `yaml:"createdAt"`
}

type seedReview struct {
	ID         string    `yaml:"id"`
	ProductID  string    `yaml:"productId"`
	UserID     string    `yaml:"userId"`
	Username   string    `yaml:"username"`
	UserAvatar *string   `yaml:"userAvatar"`
	Rating     float64   `yaml:"rating"`
	Title      string    `yaml:"title"`
	Comment    string    `yaml:"comment"`
	Helpful    int       `yaml:"helpful"`
	CreatedAt  time.Time `yaml:"createdAt"`
	Verified   bool      `yaml:"verified"`
}

// DefaultSeed is the catalog compiled into the binary.
func DefaultSeed() (domain.Catalog, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a YAML seed file; an empty path yields DefaultSeed.
func LoadSeed(path string) (domain.Catalog, error) {
	if path == "" {
		return DefaultSeed()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) (domain.Catalog, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse seed: %w", err)
	}
	c := domain.Catalog{
		Products: make([]domain.Product, 0, len(f.Products)),
		Reviews:  make([]domain.Review, 0, len(f.Reviews)),
	}
	for _, p := range f.Products {
		if p.ID == "" {
			return domain.Catalog{}, fmt.Errorf("parse seed: product without id")
		}
		c.Products = append(c.Products, domain.Product{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Category:      p.Category,
			Image:         p.Image,
			Price:         p.Price,
			AverageRating: p.AverageRating,
			TotalReviews:  p.TotalReviews,
			Features:      p.Features,
			Brand:         p.Brand,
			CreatedAt:     p.CreatedAt.UTC(),
		})
	}
	for _, r := range f.Reviews {
		if r.ID == "" || r.ProductID == "" {
			return domain.Catalog{}, fmt.Errorf("parse seed: review %q needs id and productId", r.ID)
		}
		c.Reviews = append(c.Reviews, domain.Review{
			ID:           r.ID,
			ProductID:    r.ProductID,
			AuthorID:     r.UserID,
			Username:     r.Username,
			UserAvatar:   r.UserAvatar,
			Rating:       r.Rating,
			Title:        r.Title,
			Body:         r.Comment,
			HelpfulCount: r.Helpful,
			CreatedAt:    r.CreatedAt.UTC(),
			Verified:     r.Verified,
		})
	}
	return c, nil
}
