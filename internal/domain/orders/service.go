package orders

import (
	"context"
	"fmt"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/domain/margin"
	"salemargin/internal/domain/settings"
	"salemargin/pkg/logger"
)

// RecomputeAuditor records batch recomputations for traceability. Optional.
type RecomputeAuditor interface {
	LogRecompute(ctx context.Context, orderID id.ID, trigger string, changes any) error
}

// LinePatch carries the editable line inputs for an update. Nil fields are
// left unchanged.
type LinePatch struct {
	Quantity  *float64
	PriceUnit *types.Money
	Discount  *types.Money
}

// Service orchestrates the margin cascade over sale orders. Each stage is a
// pure function from the margin package; this service resolves the upstream
// data (product cost, category, analytic rate, overhead config), runs the
// stages in dependency order, and persists the result. Confirmed orders are
// never recomputed.
type Service struct {
	orders     Repository
	products   product.Repository
	categories category.Repository
	analytics  analytic.Repository
	params     *settings.Service
	resolver   *landedcost.Resolver
	auditor    RecomputeAuditor // optional
}

// NewService creates a new sale order service. auditor may be nil.
func NewService(
	orders Repository,
	products product.Repository,
	categories category.Repository,
	analytics analytic.Repository,
	params *settings.Service,
	resolver *landedcost.Resolver,
	auditor RecomputeAuditor,
) *Service {
	return &Service{
		orders:     orders,
		products:   products,
		categories: categories,
		analytics:  analytics,
		params:     params,
		resolver:   resolver,
		auditor:    auditor,
	}
}

// Create validates the order, runs the cascade over its lines and persists it.
func (s *Service) Create(ctx context.Context, order *SaleOrder) error {
	if err := order.Validate(ctx); err != nil {
		return err
	}

	cfg, err := s.params.OverheadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load overhead config: %w", err)
	}

	if err := s.recomputeOrder(ctx, order, cfg); err != nil {
		return err
	}

	return s.orders.Create(ctx, order)
}

// Get retrieves an order with its lines.
func (s *Service) Get(ctx context.Context, orderID id.ID) (*SaleOrder, error) {
	return s.orders.Get(ctx, orderID)
}

// List retrieves all orders.
func (s *Service) List(ctx context.Context) ([]*SaleOrder, error) {
	return s.orders.List(ctx)
}

// AddLine appends a line to a draft order and recomputes the cascade.
func (s *Service) AddLine(ctx context.Context, orderID, productID id.ID, quantity float64, priceUnit, discount types.Money) (*SaleOrder, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsConfirmed() {
		return nil, apperror.NewBusinessRule(
			apperror.CodeOrderConfirmed,
			"cannot add lines to a confirmed order",
		).WithDetail("order_id", orderID.String())
	}

	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	order.AddLine(productID, quantity, priceUnit, discount)
	order.Touch()

	if err := s.recomputeAndSave(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateLine edits a line's inputs on a draft order and recomputes the
// cascade.
func (s *Service) UpdateLine(ctx context.Context, orderID, lineID id.ID, patch LinePatch) (*SaleOrder, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsConfirmed() {
		return nil, apperror.NewBusinessRule(
			apperror.CodeOrderConfirmed,
			"cannot edit lines of a confirmed order",
		).WithDetail("order_id", orderID.String())
	}

	line, ok := order.Line(lineID)
	if !ok {
		return nil, apperror.NewNotFound("order line", lineID)
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "quantity")
		}
		line.Quantity = *patch.Quantity
	}
	if patch.PriceUnit != nil {
		line.PriceUnit = *patch.PriceUnit
	}
	if patch.Discount != nil {
		line.Discount = *patch.Discount
	}
	line.refreshSubtotal()
	order.refreshAmountUntaxed()
	order.Touch()

	if err := s.recomputeAndSave(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm transitions the order to sale, freezing the stored snapshots and
// margin fields as they are. No recomputation happens on confirmation or at
// any point after it.
func (s *Service) Confirm(ctx context.Context, orderID id.ID) (*SaleOrder, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(ctx); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Recompute reruns the whole cascade for one order. For confirmed orders
// this is inert: nothing is read, recomputed or written.
func (s *Service) Recompute(ctx context.Context, orderID id.ID, trigger string) (*SaleOrder, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsConfirmed() {
		return order, nil
	}

	cfg, err := s.params.OverheadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load overhead config: %w", err)
	}
	if err := s.recomputeOrder(ctx, order, cfg); err != nil {
		return nil, err
	}
	order.Touch()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.audit(ctx, order, trigger)
	return order, nil
}

// RecomputeForAnalyticAccounts reruns the cascade for every draft order
// touched by the given analytic accounts. This is the consumer-side reaction
// to an overhead change event; the analytic service itself never calls it.
// The overhead config is read once and applied to the entire batch.
func (s *Service) RecomputeForAnalyticAccounts(ctx context.Context, accountIDs []id.ID, trigger string) (int, error) {
	cfg, err := s.params.OverheadConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load overhead config: %w", err)
	}

	affected, err := s.orders.ListDraftByAnalyticAccounts(ctx, accountIDs)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, order := range affected {
		if order.IsConfirmed() {
			continue
		}
		if err := s.recomputeOrder(ctx, order, cfg); err != nil {
			return count, err
		}
		order.Touch()
		if err := s.orders.Update(ctx, order); err != nil {
			return count, err
		}
		s.audit(ctx, order, trigger)
		count++
	}

	logger.Info(ctx, "margin recompute batch finished",
		"trigger", trigger,
		"accounts", len(accountIDs),
		"orders", count,
	)
	return count, nil
}

// LineBreakdown returns the landed cost breakdown for a line. The breakdown
// is computed on demand and never stored; it is available for confirmed
// orders too, since it does not participate in the freeze contract.
func (s *Service) LineBreakdown(ctx context.Context, orderID, lineID id.ID) (landedcost.Breakdown, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return landedcost.Breakdown{}, err
	}
	line, ok := order.Line(lineID)
	if !ok {
		return landedcost.Breakdown{}, apperror.NewNotFound("order line", lineID)
	}

	p, err := s.products.Get(ctx, line.ProductID)
	if err != nil {
		return landedcost.Breakdown{}, err
	}

	query := landedcost.BreakdownQuery{
		ProductID: p.ID,
		Quantity:  line.Quantity,
	}

	if cat, err := s.categories.Get(ctx, p.CategoryID); err == nil {
		query.CategoryName = cat.Name
		if cat.HasAnalyticAccount() {
			if account, err := s.analytics.Get(ctx, *cat.AnalyticAccountID); err == nil {
				query.AnalyticName = account.Name
			}
		}
	} else if !apperror.IsNotFound(err) {
		return landedcost.Breakdown{}, err
	}

	return s.resolver.Resolve(ctx, query)
}

// recomputeAndSave loads the config once and runs the cascade before saving.
func (s *Service) recomputeAndSave(ctx context.Context, order *SaleOrder) error {
	cfg, err := s.params.OverheadConfig(ctx)
	if err != nil {
		return fmt.Errorf("load overhead config: %w", err)
	}
	if err := s.recomputeOrder(ctx, order, cfg); err != nil {
		return err
	}
	return s.orders.Update(ctx, order)
}

// recomputeOrder runs the full cascade over every line, then aggregates.
// cfg is the batch-level config snapshot. Confirmed orders are left
// untouched no matter how often this is called.
func (s *Service) recomputeOrder(ctx context.Context, order *SaleOrder, cfg margin.Config) error {
	if order.IsConfirmed() {
		return nil
	}

	for _, line := range order.Lines {
		p, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}

		in, err := s.overheadInputs(ctx, p)
		if err != nil {
			return err
		}

		cost := margin.ComputeCostSnapshot(p.StandardPrice, line.Quantity)
		line.applyCostSnapshot(cost)

		overhead := margin.ComputeOverheadSnapshot(cfg, in, line.costSnapshot(), line.Quantity)
		line.applyOverheadSnapshot(overhead)

		line.applyMarginFields(margin.ComputeFields(line.PriceSubtotal, line.costSnapshot(), overhead))
	}

	order.applyTotals(margin.AggregateOrder(order.lineTotals(), order.AmountUntaxed))
	return nil
}

// overheadInputs resolves product -> category -> analytic account. Missing
// links degrade to "no analytic" (zero overhead) instead of failing.
func (s *Service) overheadInputs(ctx context.Context, p *product.Product) (margin.OverheadInputs, error) {
	none := margin.OverheadInputs{}

	cat, err := s.categories.Get(ctx, p.CategoryID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return none, nil
		}
		return none, err
	}
	if !cat.HasAnalyticAccount() {
		return none, nil
	}

	account, err := s.analytics.Get(ctx, *cat.AnalyticAccountID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return none, nil
		}
		return none, err
	}

	return margin.OverheadInputs{HasAnalytic: true, Rate: account.Overhead}, nil
}

// audit records a recompute, best-effort.
func (s *Service) audit(ctx context.Context, order *SaleOrder, trigger string) {
	if s.auditor == nil {
		return
	}
	changes := map[string]any{
		"total_cost":        order.TotalCost,
		"total_margin":      order.TotalMargin,
		"margin_percentage": order.MarginPercentage,
	}
	if err := s.auditor.LogRecompute(ctx, order.ID, trigger, changes); err != nil {
		logger.Warn(ctx, "recompute audit failed", "order_id", order.ID, "error", err)
	}
}
