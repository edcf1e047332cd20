package category

import (
	"context"

	"salemargin/internal/core/id"
)

// Repository defines the interface for category persistence.
type Repository interface {
	// Get retrieves a category by ID.
	Get(ctx context.Context, id id.ID) (*Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, category *Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *Category) error

	// List retrieves all categories.
	List(ctx context.Context) ([]*Category, error)
}
