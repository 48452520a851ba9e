package catalog

import (
	"context"
	"errors"
)

var ErrProductNotFound = errors.New("product not found")

// Repository defines the catalog reads the storefront needs.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	// ListByCategory returns every product in the category, in whatever
	// order the backend yields them. An empty category means all
	// products. Implementations must not sort: display order is applied
	// by the Service so the query never needs a compound index.
	ListByCategory(ctx context.Context, category string) ([]Product, error)

	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
}

// Writer covers the admin panel's catalog mutations.
type Writer interface {
	Create(ctx context.Context, p *Product) (string, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
