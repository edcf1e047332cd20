package landedcost

import (
	"context"

	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
)

// defaultName substitutes missing category/analytic/label names.
const defaultName = "—"

// defaultLabel substitutes an unnamed cost line.
const defaultLabel = "Landed Cost"

// BreakdownEntry is one human-readable row of the per-unit cost breakdown.
type BreakdownEntry struct {
	Label                string      `json:"label"`
	SplitMethod          string      `json:"split_method"`
	AdditionalLandedCost types.Money `json:"additional_landed_cost"`
	Quantity             float64     `json:"quantity"`
	PerUnit              types.Money `json:"per_unit"`
	EstimatedTotal       types.Money `json:"estimated_total"`
}

// Breakdown is the read-only landed cost breakdown for an order line.
type Breakdown struct {
	Landed          []BreakdownEntry `json:"landed"`
	CategoryName    string           `json:"category_name"`
	AnalyticAccount string           `json:"analytic_account"`
}

// BreakdownQuery identifies the line the breakdown is built for. Category
// and analytic names are resolved by the caller (they live in the catalogs);
// empty names fall back to a placeholder.
type BreakdownQuery struct {
	ProductID    id.ID
	Quantity     float64
	CategoryName string
	AnalyticName string
}

// Resolver builds landed cost breakdowns from the adjustment ledger.
type Resolver struct {
	ledger Ledger
}

// NewResolver creates a breakdown resolver.
func NewResolver(ledger Ledger) *Resolver {
	return &Resolver{ledger: ledger}
}

// Resolve returns the breakdown for the most recent finalized landed cost
// record touching the product. With no finalized records the breakdown is
// empty but still carries the category and analytic names. Entries of older
// cost records are ignored: only the newest record's allocation is shown.
func (r *Resolver) Resolve(ctx context.Context, q BreakdownQuery) (Breakdown, error) {
	breakdown := Breakdown{
		Landed:          []BreakdownEntry{},
		CategoryName:    orDefault(q.CategoryName, defaultName),
		AnalyticAccount: orDefault(q.AnalyticName, defaultName),
	}

	entries, err := r.ledger.FinalizedAdjustmentsByProduct(ctx, q.ProductID)
	if err != nil {
		return Breakdown{}, err
	}
	if len(entries) == 0 {
		return breakdown, nil
	}

	// Entries arrive newest cost record first.
	mostRecent := entries[0].CostID
	lineQty := types.FromQuantity(q.Quantity)

	for _, adj := range entries {
		if adj.CostID != mostRecent {
			continue
		}
		perUnit := types.SafeRatio(adj.AdditionalLandedCost, types.FromQuantity(adj.Quantity))
		breakdown.Landed = append(breakdown.Landed, BreakdownEntry{
			Label:                orDefault(adj.Label, defaultLabel),
			SplitMethod:          adj.SplitMethod,
			AdditionalLandedCost: adj.AdditionalLandedCost,
			Quantity:             adj.Quantity,
			PerUnit:              perUnit,
			EstimatedTotal:       perUnit.Mul(lineQty),
		})
	}

	return breakdown, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
