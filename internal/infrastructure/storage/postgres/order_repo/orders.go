// Package order_repo provides the PostgreSQL implementation of the sale
// order repository. Orders persist together with their lines; the lines are
// replaced wholesale on update, which keeps the stored snapshot fields in
// step with what the service computed.
package order_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/domain/orders"
	"salemargin/internal/infrastructure/storage/postgres"
)

const (
	ordersTable = "doc_sale_orders"
	linesTable  = "doc_sale_order_lines"
)

// OrderRepo implements orders.Repository backed by PostgreSQL.
type OrderRepo struct {
	db        *postgres.TxManager
	orderCols []string
	lineCols  []string
}

// NewOrderRepo creates a new sale order repository.
func NewOrderRepo(db *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		db:        db,
		orderCols: postgres.ExtractDBColumns[orders.SaleOrder](),
		lineCols:  postgres.ExtractDBColumns[orders.SaleOrderLine](),
	}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get retrieves an order with its lines.
func (r *OrderRepo) Get(ctx context.Context, orderID id.ID) (*orders.SaleOrder, error) {
	sql, args, err := r.builder().
		Select(r.orderCols...).
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var order orders.SaleOrder
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &order, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("SaleOrder", orderID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", ordersTable, err))
	}

	if err := r.loadLines(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts a new order with its lines in one transaction.
func (r *OrderRepo) Create(ctx context.Context, order *orders.SaleOrder) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		sql, args, err := r.builder().
			Insert(ordersTable).
			SetMap(postgres.StructToMap(order)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return apperror.NewDatabase(fmt.Errorf("insert %s: %w", ordersTable, err))
		}

		return r.insertLines(ctx, order.Lines)
	})
}

// Update saves the order with optimistic locking and replaces its lines.
func (r *OrderRepo) Update(ctx context.Context, order *orders.SaleOrder) error {
	return r.db.WithinTx(ctx, func(ctx context.Context) error {
		data := postgres.StructToMap(order)
		version, _ := data["version"].(int)
		delete(data, "id")

		sql, args, err := r.builder().
			Update(ordersTable).
			SetMap(data).
			Where(squirrel.Eq{"id": order.ID, "version": version - 1}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
		if err != nil {
			return apperror.NewDatabase(fmt.Errorf("update %s: %w", ordersTable, err))
		}
		if tag.RowsAffected() == 0 {
			return apperror.NewConflict("order was modified concurrently").
				WithDetail("order_id", order.ID.String())
		}

		if _, err := r.db.GetQuerier(ctx).Exec(ctx,
			`DELETE FROM `+linesTable+` WHERE order_id = $1`, order.ID,
		); err != nil {
			return apperror.NewDatabase(fmt.Errorf("delete %s: %w", linesTable, err))
		}

		return r.insertLines(ctx, order.Lines)
	})
}

// List retrieves all orders with their lines, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]*orders.SaleOrder, error) {
	sql, args, err := r.builder().
		Select(r.orderCols...).
		From(ordersTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date DESC", "number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var result []*orders.SaleOrder
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select %s: %w", ordersTable, err))
	}

	for _, order := range result {
		if err := r.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ListDraftByAnalyticAccounts retrieves draft orders that have at least one
// line whose product's category links one of the given analytic accounts.
func (r *OrderRepo) ListDraftByAnalyticAccounts(ctx context.Context, accountIDs []id.ID) ([]*orders.SaleOrder, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select("DISTINCT o.id").
		From(ordersTable + " o").
		Join(linesTable + " l ON l.order_id = o.id").
		Join("cat_products p ON p.id = l.product_id").
		Join("cat_product_categories c ON c.id = p.category_id").
		Where(squirrel.Eq{
			"o.state":               orders.StateDraft,
			"o.deletion_mark":       false,
			"c.analytic_account_id": accountIDs,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var orderIDs []id.ID
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &orderIDs, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select affected orders: %w", err))
	}

	result := make([]*orders.SaleOrder, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		order, err := r.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, nil
}

// loadLines fetches the order's lines in stable creation order. Line IDs are
// UUIDv7, so ordering by ID is ordering by creation time.
func (r *OrderRepo) loadLines(ctx context.Context, order *orders.SaleOrder) error {
	sql, args, err := r.builder().
		Select(r.lineCols...).
		From(linesTable).
		Where(squirrel.Eq{"order_id": order.ID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}

	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &order.Lines, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("select %s: %w", linesTable, err))
	}
	return nil
}

// insertLines appends line rows. Caller holds the transaction.
func (r *OrderRepo) insertLines(ctx context.Context, lines []*orders.SaleOrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	builder := r.builder().Insert(linesTable).Columns(r.lineCols...)
	for _, line := range lines {
		data := postgres.StructToMap(line)
		values := make([]any, 0, len(r.lineCols))
		for _, col := range r.lineCols {
			values = append(values, data[col])
		}
		builder = builder.Values(values...)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert %s: %w", linesTable, err))
	}
	return nil
}

var _ orders.Repository = (*OrderRepo)(nil)
