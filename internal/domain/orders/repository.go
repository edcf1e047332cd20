package orders

import (
	"context"

	"salemargin/internal/core/id"
)

// Repository defines the interface for sale order persistence. Orders load
// and save together with their lines.
type Repository interface {
	// Get retrieves an order with its lines.
	Get(ctx context.Context, id id.ID) (*SaleOrder, error)

	// Create inserts a new order with its lines.
	Create(ctx context.Context, order *SaleOrder) error

	// Update saves the order and replaces its lines.
	Update(ctx context.Context, order *SaleOrder) error

	// List retrieves all orders with their lines.
	List(ctx context.Context) ([]*SaleOrder, error)

	// ListDraftByAnalyticAccounts retrieves draft orders that have at least
	// one line whose product's category links one of the given analytic
	// accounts. Used for targeted recomputation after a rate change.
	ListDraftByAnalyticAccounts(ctx context.Context, accountIDs []id.ID) ([]*SaleOrder, error)
}
