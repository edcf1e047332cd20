// Package landedcost provides the landed cost adjustment ledger and the
// per-line cost breakdown resolver. Landed costs (freight, duty, handling)
// are allocated to products through validated adjustment entries; the
// breakdown is informational only and never feeds margin computation.
package landedcost

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/entity"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
)

// State is the lifecycle state of a landed cost record.
type State string

const (
	StateDraft State = "draft"
	StateDone  State = "done"
)

// LandedCost is a landed cost record. Only records in StateDone contribute
// adjustment entries to breakdowns.
type LandedCost struct {
	entity.Document

	State State `db:"state" json:"state"`
}

// NewLandedCost creates a draft landed cost record.
func NewLandedCost(number string) *LandedCost {
	return &LandedCost{
		Document: entity.NewDocument(number),
		State:    StateDraft,
	}
}

// Finalize transitions the record to done. Finalization is terminal.
func (lc *LandedCost) Finalize(ctx context.Context) error {
	if lc.State == StateDone {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"landed cost is already finalized",
		).WithDetail("cost_id", lc.ID.String())
	}
	lc.State = StateDone
	lc.Touch()
	return nil
}

// AdjustmentLine is one valuation adjustment entry: a share of a landed cost
// record allocated to a product.
type AdjustmentLine struct {
	ID     id.ID `db:"id" json:"id"`
	CostID id.ID `db:"cost_id" json:"costId"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Label names the underlying cost line (freight, customs, ...).
	Label string `db:"label" json:"label"`

	// SplitMethod is how the cost was split across products
	// (equal, by_quantity, by_current_cost_price, ...).
	SplitMethod string `db:"split_method" json:"splitMethod"`

	// AdditionalLandedCost is the amount allocated to the product.
	AdditionalLandedCost types.Money `db:"additional_landed_cost" json:"additionalLandedCost"`

	// Quantity is the product quantity the amount was spread over.
	Quantity float64 `db:"quantity" json:"quantity"`
}

// Ledger is the read boundary over the adjustment ledger.
type Ledger interface {
	// FinalizedAdjustmentsByProduct returns all adjustment entries for the
	// product whose cost record is finalized, ordered by descending cost
	// record ID. IDs are UUIDv7, so descending ID order is newest-first;
	// on identical timestamps the higher ID wins.
	FinalizedAdjustmentsByProduct(ctx context.Context, productID id.ID) ([]AdjustmentLine, error)
}
