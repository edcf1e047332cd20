package catalog_repo

import (
	"context"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/infrastructure/storage/postgres"
)

// ProductRepo implements product.Repository backed by PostgreSQL.
type ProductRepo struct {
	*BaseCatalogRepo[product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(db *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[product.Product](db, "cat_products", "Product"),
	}
}

// Get retrieves a product by ID.
func (r *ProductRepo) Get(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

// List retrieves all products.
func (r *ProductRepo) List(ctx context.Context) ([]*product.Product, error) {
	return r.ListAll(ctx)
}

var _ product.Repository = (*ProductRepo)(nil)
