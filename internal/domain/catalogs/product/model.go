// Package product provides the product catalog.
package product

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/entity"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
)

// Product is a sellable item with a current unit cost.
type Product struct {
	entity.Catalog

	// StandardPrice is the current unit cost. Order lines snapshot it at
	// computation time; later changes never reach confirmed orders.
	StandardPrice types.Money `db:"standard_price" json:"standardPrice"`

	// CategoryID is the owning product category.
	CategoryID id.ID `db:"category_id" json:"categoryId"`
}

// NewProduct creates a new product in the given category.
func NewProduct(code, name string, categoryID id.ID) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(code, name),
		StandardPrice: types.Zero(),
		CategoryID:    categoryID,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}

	if p.StandardPrice.IsNegative() {
		return apperror.NewValidation("standard price cannot be negative").
			WithDetail("field", "standardPrice")
	}

	return nil
}
