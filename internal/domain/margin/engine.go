package margin

import (
	"salemargin/internal/core/types"
)

// CostSnapshot captures a product's unit cost at computation time.
type CostSnapshot struct {
	// Unit is the product's standard price at snapshot time.
	Unit types.Money

	// Total is Unit scaled by the line quantity.
	Total types.Money
}

// ComputeCostSnapshot derives the cost snapshot for a line from the product's
// current standard price and the line quantity.
func ComputeCostSnapshot(standardPrice types.Money, quantity float64) CostSnapshot {
	total := standardPrice.Mul(types.FromQuantity(quantity))
	return CostSnapshot{
		Unit:  standardPrice,
		Total: total,
	}
}

// OverheadInputs carries the analytic linkage resolved for a line:
// product -> category -> analytic account.
type OverheadInputs struct {
	// HasAnalytic is false when the product's category has no linked
	// analytic account; overhead stays zero in that case.
	HasAnalytic bool

	// Rate is the analytic account's overhead value: currency per unit in
	// fixed mode, percent in percentage mode.
	Rate types.Money
}

// OverheadSnapshot is the overhead charge derived for a line.
type OverheadSnapshot struct {
	Unit  types.Money
	Total types.Money
}

// ComputeOverheadSnapshot allocates overhead onto a line. The configuration
// must be the batch-level snapshot, not a fresh read per line.
//
// Percentage mode folds quantity into Unit, and Total multiplies by quantity
// once more; fixed mode keeps Unit flat and scales only in Total. The
// resulting quadratic quantity scaling of percentage totals is intentional
// compatibility behavior (see the package doc).
func ComputeOverheadSnapshot(cfg Config, in OverheadInputs, cost CostSnapshot, quantity float64) OverheadSnapshot {
	snapshot := OverheadSnapshot{Unit: types.Zero(), Total: types.Zero()}

	if !cfg.Enabled() {
		return snapshot
	}
	if !in.HasAnalytic {
		return snapshot
	}

	qty := types.FromQuantity(quantity)
	switch cfg.Mode {
	case ModePercentage:
		snapshot.Unit = cost.Unit.Mul(in.Rate.Div(types.NewMoney(100))).Mul(qty)
	case ModeFixed:
		snapshot.Unit = in.Rate
	}
	snapshot.Total = snapshot.Unit.Mul(qty)

	return snapshot
}

// Fields holds the per-line margin figures derived from the cost and overhead
// snapshots and the externally supplied price subtotal.
type Fields struct {
	TotalUnitCost    types.Money
	TotalCost        types.Money
	Margin           types.Money
	MarginPercentage types.Money
}

// ComputeFields combines the snapshots with the sale subtotal. PriceSubtotal
// is the discounted line total computed upstream; a zero subtotal yields a
// zero margin percentage.
func ComputeFields(priceSubtotal types.Money, cost CostSnapshot, overhead OverheadSnapshot) Fields {
	totalCost := cost.Total.Add(overhead.Total)
	m := priceSubtotal.Sub(totalCost)
	return Fields{
		TotalUnitCost:    cost.Unit.Add(overhead.Unit),
		TotalCost:        totalCost,
		Margin:           m,
		MarginPercentage: types.SafeRatio(m, priceSubtotal),
	}
}

// LineTotals is the per-line contribution to order aggregation.
type LineTotals struct {
	TotalCost types.Money
	Margin    types.Money
}

// OrderTotals holds the order-level aggregates.
type OrderTotals struct {
	TotalCost        types.Money
	TotalMargin      types.Money
	MarginPercentage types.Money
}

// AggregateOrder sums line costs and margins into order totals.
// AmountUntaxed is the externally maintained pre-tax order total; when zero,
// the percentage degrades to zero.
func AggregateOrder(lines []LineTotals, amountUntaxed types.Money) OrderTotals {
	totals := OrderTotals{
		TotalCost:   types.Zero(),
		TotalMargin: types.Zero(),
	}
	for _, line := range lines {
		totals.TotalCost = totals.TotalCost.Add(line.TotalCost)
		totals.TotalMargin = totals.TotalMargin.Add(line.Margin)
	}
	totals.MarginPercentage = types.SafeRatio(totals.TotalMargin, amountUntaxed)
	return totals
}
