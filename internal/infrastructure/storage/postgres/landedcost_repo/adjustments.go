// Package landedcost_repo provides PostgreSQL persistence for landed cost
// records and their valuation adjustment ledger.
package landedcost_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/infrastructure/storage/postgres"
)

const (
	costsTable       = "doc_landed_costs"
	adjustmentsTable = "reg_cost_adjustments"
)

// LandedCostRepo persists landed cost records and serves the adjustment
// ledger reads behind landedcost.Ledger.
type LandedCostRepo struct {
	db       *postgres.TxManager
	costCols []string
	adjCols  []string
}

// NewLandedCostRepo creates a new landed cost repository.
func NewLandedCostRepo(db *postgres.TxManager) *LandedCostRepo {
	return &LandedCostRepo{
		db:       db,
		costCols: postgres.ExtractDBColumns[landedcost.LandedCost](),
		adjCols:  postgres.ExtractDBColumns[landedcost.AdjustmentLine](),
	}
}

func (r *LandedCostRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get retrieves a landed cost record by ID.
func (r *LandedCostRepo) Get(ctx context.Context, costID id.ID) (*landedcost.LandedCost, error) {
	sql, args, err := r.builder().
		Select(r.costCols...).
		From(costsTable).
		Where(squirrel.Eq{"id": costID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var cost landedcost.LandedCost
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &cost, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("LandedCost", costID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", costsTable, err))
	}
	return &cost, nil
}

// Create inserts a landed cost record with its adjustment lines.
func (r *LandedCostRepo) Create(ctx context.Context, cost *landedcost.LandedCost, lines []landedcost.AdjustmentLine) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		sql, args, err := r.builder().
			Insert(costsTable).
			SetMap(postgres.StructToMap(cost)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return apperror.NewDatabase(fmt.Errorf("insert %s: %w", costsTable, err))
		}

		if len(lines) == 0 {
			return nil
		}

		builder := r.builder().Insert(adjustmentsTable).Columns(r.adjCols...)
		for i := range lines {
			data := postgres.StructToMap(&lines[i])
			values := make([]any, 0, len(r.adjCols))
			for _, col := range r.adjCols {
				values = append(values, data[col])
			}
			builder = builder.Values(values...)
		}

		sql, args, err = builder.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return apperror.NewDatabase(fmt.Errorf("insert %s: %w", adjustmentsTable, err))
		}
		return nil
	})
}

// Update saves a landed cost record with optimistic locking. Adjustment
// lines are immutable once written.
func (r *LandedCostRepo) Update(ctx context.Context, cost *landedcost.LandedCost) error {
	data := postgres.StructToMap(cost)
	version, _ := data["version"].(int)
	delete(data, "id")

	sql, args, err := r.builder().
		Update(costsTable).
		SetMap(data).
		Where(squirrel.Eq{"id": cost.ID, "version": version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update %s: %w", costsTable, err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("landed cost was modified concurrently").
			WithDetail("cost_id", cost.ID.String())
	}
	return nil
}

// FinalizedAdjustmentsByProduct implements landedcost.Ledger. Only entries
// whose cost record reached the done state count; descending cost_id puts
// the newest record first (UUIDv7).
func (r *LandedCostRepo) FinalizedAdjustmentsByProduct(ctx context.Context, productID id.ID) ([]landedcost.AdjustmentLine, error) {
	cols := make([]string, 0, len(r.adjCols))
	for _, col := range r.adjCols {
		cols = append(cols, "a."+col)
	}

	sql, args, err := r.builder().
		Select(cols...).
		From(adjustmentsTable + " a").
		Join(costsTable + " c ON c.id = a.cost_id").
		Where(squirrel.Eq{
			"a.product_id":    productID,
			"c.state":         landedcost.StateDone,
			"c.deletion_mark": false,
		}).
		OrderBy("a.cost_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var lines []landedcost.AdjustmentLine
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", adjustmentsTable, err))
	}
	return lines, nil
}

var (
	_ landedcost.Ledger = (*LandedCostRepo)(nil)
	_ landedcost.Store  = (*LandedCostRepo)(nil)
)
