package analytic

import (
	"context"

	"salemargin/internal/core/id"
)

// Repository defines the interface for analytic account persistence.
type Repository interface {
	// Get retrieves an account by ID.
	Get(ctx context.Context, id id.ID) (*Account, error)

	// GetMany retrieves accounts for a set of IDs.
	GetMany(ctx context.Context, ids []id.ID) ([]*Account, error)

	// Create inserts a new account.
	Create(ctx context.Context, account *Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *Account) error

	// List retrieves all accounts.
	List(ctx context.Context) ([]*Account, error)
}
