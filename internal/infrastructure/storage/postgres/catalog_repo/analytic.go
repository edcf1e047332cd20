package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/infrastructure/storage/postgres"
)

// AnalyticRepo implements analytic.Repository backed by PostgreSQL.
type AnalyticRepo struct {
	*BaseCatalogRepo[analytic.Account]
}

// NewAnalyticRepo creates a new analytic account repository.
func NewAnalyticRepo(db *postgres.TxManager) *AnalyticRepo {
	return &AnalyticRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[analytic.Account](db, "cat_analytic_accounts", "AnalyticAccount"),
	}
}

// Get retrieves an account by ID.
func (r *AnalyticRepo) Get(ctx context.Context, accountID id.ID) (*analytic.Account, error) {
	return r.GetByID(ctx, accountID)
}

// GetMany retrieves accounts for a set of IDs. Missing IDs are not an
// error; callers compare lengths when they care.
func (r *AnalyticRepo) GetMany(ctx context.Context, ids []id.ID) ([]*analytic.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": ids, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var dest []*analytic.Account
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &dest, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", r.tableName, err))
	}
	return dest, nil
}

// List retrieves all accounts.
func (r *AnalyticRepo) List(ctx context.Context) ([]*analytic.Account, error) {
	return r.ListAll(ctx)
}

var _ analytic.Repository = (*AnalyticRepo)(nil)
