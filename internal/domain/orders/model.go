// Package orders provides the sale order document and the margin cascade
// orchestration: cost snapshot -> overhead snapshot -> margin fields ->
// order totals, recomputed while the order is a draft and frozen once it is
// confirmed.
package orders

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/entity"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/margin"
)

// State is the sale order lifecycle state. Transitions are monotonic:
// draft -> sale -> done. There is no way back; entering sale freezes every
// snapshot and derived margin field on the order's lines.
type State string

const (
	StateDraft State = "draft"
	StateSale  State = "sale"
	StateDone  State = "done"
)

// SaleOrder is a sale order with margin totals aggregated from its lines.
type SaleOrder struct {
	entity.Document

	// PartnerName is the customer display name.
	PartnerName string `db:"partner_name" json:"partnerName"`

	State State `db:"state" json:"state"`

	// AmountUntaxed is the pre-tax order total, maintained from line
	// subtotals. The aggregator treats it as an input.
	AmountUntaxed types.Money `db:"amount_untaxed" json:"amountUntaxed"`

	// Totals aggregated from lines.
	TotalCost        types.Money `db:"total_cost" json:"totalCost"`
	TotalMargin      types.Money `db:"total_margin" json:"totalMargin"`
	MarginPercentage types.Money `db:"margin_percentage" json:"marginPercentage"`

	Lines []*SaleOrderLine `db:"-" json:"lines"`
}

// SaleOrderLine is one order line. The snapshot and margin fields are stored:
// computed by the service, persisted, and recomputed only while the order is
// not confirmed.
type SaleOrderLine struct {
	ID      id.ID `db:"id" json:"id"`
	OrderID id.ID `db:"order_id" json:"orderId"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Inputs, editable pre-confirmation.
	Quantity  float64     `db:"quantity" json:"quantity"`
	PriceUnit types.Money `db:"price_unit" json:"priceUnit"`
	Discount  types.Money `db:"discount" json:"discount"` // percent

	// PriceSubtotal is the discounted line total. Maintained from the
	// inputs above; the margin core consumes it as-is.
	PriceSubtotal types.Money `db:"price_subtotal" json:"priceSubtotal"`

	// Stored snapshots, frozen on confirmation.
	CostSnapshot          types.Money `db:"cost_snapshot" json:"costSnapshot"`
	TotalCostSnapshot     types.Money `db:"total_cost_snapshot" json:"totalCostSnapshot"`
	OverheadSnapshot      types.Money `db:"overhead_snapshot" json:"overheadSnapshot"`
	TotalOverheadSnapshot types.Money `db:"total_overhead_snapshot" json:"totalOverheadSnapshot"`

	// Stored margin fields derived from the snapshots.
	TotalUnitCost    types.Money `db:"total_unit_cost" json:"totalUnitCost"`
	TotalCost        types.Money `db:"total_cost" json:"totalCost"`
	Margin           types.Money `db:"margin" json:"margin"`
	MarginPercentage types.Money `db:"margin_percentage" json:"marginPercentage"`
}

// NewSaleOrder creates a draft sale order.
func NewSaleOrder(number, partnerName string) *SaleOrder {
	return &SaleOrder{
		Document:         entity.NewDocument(number),
		PartnerName:      partnerName,
		State:            StateDraft,
		AmountUntaxed:    types.Zero(),
		TotalCost:        types.Zero(),
		TotalMargin:      types.Zero(),
		MarginPercentage: types.Zero(),
	}
}

// IsConfirmed reports whether the order has left draft. Confirmed orders'
// line snapshots are frozen for good.
func (o *SaleOrder) IsConfirmed() bool {
	return o.State == StateSale || o.State == StateDone
}

// Confirm transitions draft -> sale, freezing the stored snapshots as they
// are at this moment.
func (o *SaleOrder) Confirm(ctx context.Context) error {
	if o.IsConfirmed() {
		return apperror.NewBusinessRule(
			apperror.CodeOrderConfirmed,
			"order is already confirmed",
		).WithDetail("order_id", o.ID.String())
	}
	o.State = StateSale
	o.Touch()
	return nil
}

// MarkDone transitions sale -> done.
func (o *SaleOrder) MarkDone(ctx context.Context) error {
	if o.State != StateSale {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"only confirmed orders can be marked done",
		).WithDetail("order_id", o.ID.String()).WithDetail("state", string(o.State))
	}
	o.State = StateDone
	o.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (o *SaleOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	for i, line := range o.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < 0 {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// AddLine appends a line and refreshes its subtotal and the order's untaxed
// amount. Snapshot and margin fields stay zero until the service runs the
// cascade.
func (o *SaleOrder) AddLine(productID id.ID, quantity float64, priceUnit, discount types.Money) *SaleOrderLine {
	line := &SaleOrderLine{
		ID:        id.New(),
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		PriceUnit: priceUnit,
		Discount:  discount,
	}
	line.refreshSubtotal()

	o.Lines = append(o.Lines, line)
	o.refreshAmountUntaxed()
	return line
}

// Line returns the line with the given ID.
func (o *SaleOrder) Line(lineID id.ID) (*SaleOrderLine, bool) {
	for _, line := range o.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return nil, false
}

// refreshAmountUntaxed recomputes the pre-tax total from line subtotals.
func (o *SaleOrder) refreshAmountUntaxed() {
	total := types.Zero()
	for _, line := range o.Lines {
		total = total.Add(line.PriceSubtotal)
	}
	o.AmountUntaxed = total
}

// refreshSubtotal derives the discounted line total from the inputs:
// price_unit * (1 - discount/100) * quantity.
func (l *SaleOrderLine) refreshSubtotal() {
	factor := types.NewMoney(1).Sub(l.Discount.Div(types.NewMoney(100)))
	l.PriceSubtotal = l.PriceUnit.Mul(factor).Mul(types.FromQuantity(l.Quantity))
}

// applyCostSnapshot stores the cost snapshot stage.
func (l *SaleOrderLine) applyCostSnapshot(cs margin.CostSnapshot) {
	l.CostSnapshot = cs.Unit
	l.TotalCostSnapshot = cs.Total
}

// applyOverheadSnapshot stores the overhead stage.
func (l *SaleOrderLine) applyOverheadSnapshot(oh margin.OverheadSnapshot) {
	l.OverheadSnapshot = oh.Unit
	l.TotalOverheadSnapshot = oh.Total
}

// applyMarginFields stores the margin stage.
func (l *SaleOrderLine) applyMarginFields(f margin.Fields) {
	l.TotalUnitCost = f.TotalUnitCost
	l.TotalCost = f.TotalCost
	l.Margin = f.Margin
	l.MarginPercentage = f.MarginPercentage
}

// costSnapshot rebuilds the stage value from the stored fields.
func (l *SaleOrderLine) costSnapshot() margin.CostSnapshot {
	return margin.CostSnapshot{Unit: l.CostSnapshot, Total: l.TotalCostSnapshot}
}

// applyTotals stores the aggregation stage on the order.
func (o *SaleOrder) applyTotals(t margin.OrderTotals) {
	o.TotalCost = t.TotalCost
	o.TotalMargin = t.TotalMargin
	o.MarginPercentage = t.MarginPercentage
}

// lineTotals collects the per-line aggregation inputs.
func (o *SaleOrder) lineTotals() []margin.LineTotals {
	totals := make([]margin.LineTotals, 0, len(o.Lines))
	for _, line := range o.Lines {
		totals = append(totals, margin.LineTotals{
			TotalCost: line.TotalCost,
			Margin:    line.Margin,
		})
	}
	return totals
}

var _ entity.Validatable = (*SaleOrder)(nil)
