package dashboard

import (
	"context"
	"math"

	"github.com/simp-lee/adminboard/internal/domain"
)

// PriceBucket counts how many products fall into a price range.
type PriceBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats aggregates the dashboard overview numbers.
type Stats struct {
	TotalUsers    int64         `json:"total_users"`
	TotalProducts int64         `json:"total_products"`
	TotalStock    int64         `json:"total_stock"`
	Revenue       float64       `json:"revenue"`
	AverageRating float64       `json:"average_rating"`
	PriceBuckets  []PriceBucket `json:"price_buckets"`
}

// priceBucketBounds defines the upper bound (inclusive) of each bucket; the
// last bucket is open-ended.
var priceBucketBounds = []struct {
	label string
	upper float64
}{
	{"$0 - $50", 50},
	{"$51 - $100", 100},
	{"$101 - $500", 500},
	{"$501 - $1000", 1000},
	{"$1000+", math.Inf(1)},
}

// Service computes dashboard statistics.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type dashboardService struct {
	userRepo    domain.UserRepository
	productRepo domain.ProductRepository
}

// NewService creates a dashboard Service over the user and product repositories.
func NewService(userRepo domain.UserRepository, productRepo domain.ProductRepository) Service {
	return &dashboardService{userRepo: userRepo, productRepo: productRepo}
}

// Stats aggregates totals over the full catalog: user and product counts,
// inventory revenue (price times stock), the average product rating, and the
// price distribution buckets.
func (s *dashboardService) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:    totalUsers,
		TotalProducts: int64(len(products)),
		PriceBuckets:  []PriceBucket{},
	}

	counts := make([]int, len(priceBucketBounds))
	var ratingSum float64
	for _, p := range products {
		stats.TotalStock += int64(p.Stock)
		stats.Revenue += p.Price * float64(p.Stock)
		ratingSum += p.Rating

		for i, b := range priceBucketBounds {
			if p.Price <= b.upper {
				counts[i]++
				break
			}
		}
	}
	if len(products) > 0 {
		stats.AverageRating = ratingSum / float64(len(products))
	}

	// Empty buckets are omitted from the distribution.
	for i, b := range priceBucketBounds {
		if counts[i] > 0 {
			stats.PriceBuckets = append(stats.PriceBuckets, PriceBucket{Label: b.label, Count: counts[i]})
		}
	}

	return stats, nil
}
