package product

import (
	"context"

	"salemargin/internal/core/id"
)

// Repository defines the interface for product persistence.
type Repository interface {
	// Get retrieves a product by ID.
	Get(ctx context.Context, id id.ID) (*Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *Product) error

	// List retrieves all products.
	List(ctx context.Context) ([]*Product, error)
}
