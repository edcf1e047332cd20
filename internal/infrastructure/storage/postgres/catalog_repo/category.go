package catalog_repo

import (
	"context"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/infrastructure/storage/postgres"
)

// CategoryRepo implements category.Repository backed by PostgreSQL.
type CategoryRepo struct {
	*BaseCatalogRepo[category.Category]
}

// NewCategoryRepo creates a new product category repository.
func NewCategoryRepo(db *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[category.Category](db, "cat_product_categories", "ProductCategory"),
	}
}

// Get retrieves a category by ID.
func (r *CategoryRepo) Get(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	return r.GetByID(ctx, categoryID)
}

// List retrieves all categories.
func (r *CategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	return r.ListAll(ctx)
}

var _ category.Repository = (*CategoryRepo)(nil)
