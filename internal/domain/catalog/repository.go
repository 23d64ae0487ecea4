package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	CategorySlug string // filter by category slug, empty = all categories
	Search       string // case-insensitive substring match on name
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindAvailableByID returns the product only if it exists and is available
	FindAvailableByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAvailable(ctx context.Context, filter ProductFilter) ([]Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
