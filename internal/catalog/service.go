package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// ErrUnavailable means the catalog backend could not serve the query.
// Callers must render it distinctly from an empty result: "nothing
// found" and "could not look" are different answers.
var ErrUnavailable = errors.New("catalog unavailable")

// Sort is a display ordering for product listings.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
)

// ParseSort maps a query-string value to a Sort, defaulting to newest.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest, SortPriceAsc, SortPriceDesc:
		return Sort(s)
	default:
		return SortNewest
	}
}

// Service fetches product listings by category and orders them locally.
// The remote query carries the category filter only; combining it with a
// server-side sort would require a compound index the document store is
// not guaranteed to have, so ordering is always applied after the fetch.
type Service struct {
	repo Repository
	sfg  singleflight.Group // Collapses concurrent fetches for the same category
	cb   *gobreaker.CircuitBreaker[[]Product]
}

func NewService(repo Repository) *Service {
	cb := gobreaker.NewCircuitBreaker[[]Product](gobreaker.Settings{
		Name:    "catalog",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Service{
		repo: repo,
		cb:   cb,
	}
}

// List returns the products in category, ordered by key. The sentinel
// "Semua" and the empty string both mean no filter. A backend failure or
// an open breaker surfaces as ErrUnavailable, never as an empty list.
func (s *Service) List(ctx context.Context, category string, key Sort) ([]Product, error) {
	if category == CategoryAll {
		category = ""
	}

	v, err, _ := s.sfg.Do(category, func() (interface{}, error) {
		return s.cb.Execute(func() ([]Product, error) {
			return s.repo.ListByCategory(ctx, category)
		})
	})
	if err != nil {
		log.Printf("catalog fetch for category %q failed: %v", category, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The singleflight result is shared between callers; sort a copy.
	fetched := v.([]Product)
	products := make([]Product, len(fetched))
	copy(products, fetched)

	sortProducts(products, key)
	return products, nil
}

// Get returns a single product by slug.
func (s *Service) Get(ctx context.Context, slug string) (*Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return p, nil
}

// GetByID returns a single product by document id.
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return p, nil
}

// sortProducts orders in place. The sort is stable: price ties keep the
// fetch order. A zero CreatedAt ranks as the oldest possible document.
func sortProducts(products []Product, key Sort) {
	switch key {
	case SortOldest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	default: // SortNewest
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].CreatedAt.Before(products[i].CreatedAt)
		})
	}
}
