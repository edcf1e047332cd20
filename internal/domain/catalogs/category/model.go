// Package category provides the product category catalog. A category may
// reference one analytic account; many categories can share the same account,
// and the reference is weak: the account is owned elsewhere.
package category

import (
	"context"

	"salemargin/internal/core/entity"
	"salemargin/internal/core/id"
)

// Category is a product category with an optional analytic account link.
type Category struct {
	entity.Catalog

	// AnalyticAccountID links the category to the analytic account whose
	// overhead rate applies to its products. Nil disables overhead for the
	// category's products.
	AnalyticAccountID *id.ID `db:"analytic_account_id" json:"analyticAccountId,omitempty"`
}

// NewCategory creates a new product category.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// HasAnalyticAccount reports whether an analytic account is linked.
func (c *Category) HasAnalyticAccount() bool {
	return c.AnalyticAccountID != nil && !id.IsNil(*c.AnalyticAccountID)
}
