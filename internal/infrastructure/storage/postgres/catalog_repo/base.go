// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories (products, categories, analytic accounts).
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides common CRUD operations for catalog entities.
// Embed this in specific catalog repositories.
type BaseCatalogRepo[T any] struct {
	db         *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
}

// NewBaseCatalogRepo creates a new base catalog repository. Columns are
// extracted from the entity's "db" tags once, here.
func NewBaseCatalogRepo[T any](db *postgres.TxManager, tableName, entityName string) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		db:         db,
		tableName:  tableName,
		entityName: entityName,
		selectCols: postgres.ExtractDBColumns[T](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity *T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s entity", r.entityName)
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert %s: %w", r.tableName, err))
	}
	return nil
}

// Update modifies an existing entity with optimistic locking: the WHERE
// clause matches the previous version, the row is written with the new one.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity *T) error {
	data := postgres.StructToMap(entity)

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("%s entity has no 'id' column", r.entityName)
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("%s entity has no int 'version' column", r.entityName)
	}

	setData := make(map[string]any, len(data))
	for col, val := range data {
		if col == "id" {
			continue
		}
		setData[col] = val
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(setData).
		Where(squirrel.Eq{"id": entityID, "version": version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update %s: %w", r.tableName, err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("entity was modified concurrently").
			WithDetail("entity", r.entityName).
			WithDetail("id", entityID)
	}
	return nil
}

// GetByID retrieves an entity by ID, excluding soft-deleted rows.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (*T, error) {
	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var dest T
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &dest, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound(r.entityName, entityID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", r.tableName, err))
	}
	return &dest, nil
}

// ListAll retrieves all non-deleted entities ordered by code.
func (r *BaseCatalogRepo[T]) ListAll(ctx context.Context) ([]*T, error) {
	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var dest []*T
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &dest, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", r.tableName, err))
	}
	return dest, nil
}
