package margin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salemargin/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw  string
		want Mode
	}{
		{"", ModeNone},
		{"fixed", ModeFixed},
		{"percentage", ModePercentage},
		{"garbage", ModeNone},
		{"FIXED", ModeNone},
	}

	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMode(tt.raw))
		})
	}
}

func TestComputeCostSnapshot(t *testing.T) {
	cs := ComputeCostSnapshot(money("100"), 3)

	assert.True(t, cs.Unit.Equal(money("100")), "unit cost captures standard price")
	assert.True(t, cs.Total.Equal(money("300")), "total scales by quantity")
}

func TestComputeOverheadSnapshot_Fixed(t *testing.T) {
	// rate=50, qty=3: per-unit stays flat, total scales once by quantity.
	cfg := Config{Mode: ModeFixed}
	cost := ComputeCostSnapshot(money("100"), 3)

	oh := ComputeOverheadSnapshot(cfg, OverheadInputs{HasAnalytic: true, Rate: money("50")}, cost, 3)

	assert.True(t, oh.Unit.Equal(money("50")), "fixed overhead is per unit, not scaled")
	assert.True(t, oh.Total.Equal(money("150")), "total = rate * qty")
}

func TestComputeOverheadSnapshot_Percentage(t *testing.T) {
	// cost=100, rate=10%, qty=2: unit = 100 * 0.10 * 2 = 20.
	cfg := Config{Mode: ModePercentage}
	cost := ComputeCostSnapshot(money("100"), 2)

	oh := ComputeOverheadSnapshot(cfg, OverheadInputs{HasAnalytic: true, Rate: money("10")}, cost, 2)

	assert.True(t, oh.Unit.Equal(money("20")), "percentage unit overhead folds in quantity")
}

// TestOverheadPercentageQuantityAsymmetry pins down the known asymmetry
// between the two modes: the percentage total scales by quantity twice
// (once inside Unit, once more in Total), while the fixed total scales once.
// Do not "fix" this without a confirmed change to the allocation rules.
func TestOverheadPercentageQuantityAsymmetry(t *testing.T) {
	cost := ComputeCostSnapshot(money("100"), 2)
	in := OverheadInputs{HasAnalytic: true, Rate: money("10")}

	percentage := ComputeOverheadSnapshot(Config{Mode: ModePercentage}, in, cost, 2)
	fixed := ComputeOverheadSnapshot(Config{Mode: ModeFixed}, in, cost, 2)

	// percentage: unit = 100*0.10*2 = 20, total = 20*2 = 40 (qty applied twice)
	assert.True(t, percentage.Total.Equal(money("40")))
	// fixed: unit = 10, total = 10*2 = 20 (qty applied once)
	assert.True(t, fixed.Total.Equal(money("20")))
}

func TestComputeOverheadSnapshot_Zeroed(t *testing.T) {
	cost := ComputeCostSnapshot(money("100"), 2)

	tests := []struct {
		name string
		cfg  Config
		in   OverheadInputs
	}{
		{
			name: "unset mode",
			cfg:  Config{Mode: ModeNone},
			in:   OverheadInputs{HasAnalytic: true, Rate: money("50")},
		},
		{
			name: "unrecognized mode behaves as none",
			cfg:  Config{Mode: Mode("flat")},
			in:   OverheadInputs{HasAnalytic: true, Rate: money("50")},
		},
		{
			name: "no analytic account",
			cfg:  Config{Mode: ModeFixed},
			in:   OverheadInputs{HasAnalytic: false, Rate: money("50")},
		},
		{
			name: "zero rate",
			cfg:  Config{Mode: ModeFixed},
			in:   OverheadInputs{HasAnalytic: true, Rate: types.Zero()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oh := ComputeOverheadSnapshot(tt.cfg, tt.in, cost, 2)
			assert.True(t, oh.Unit.IsZero())
			assert.True(t, oh.Total.IsZero())
		})
	}
}

func TestComputeFields_EndToEnd(t *testing.T) {
	// price_unit=200, qty=2, cost=100, fixed overhead rate=50.
	cfg := Config{Mode: ModeFixed}
	cost := ComputeCostSnapshot(money("100"), 2)
	oh := ComputeOverheadSnapshot(cfg, OverheadInputs{HasAnalytic: true, Rate: money("50")}, cost, 2)

	require.True(t, cost.Total.Equal(money("200")))
	require.True(t, oh.Total.Equal(money("100")))

	fields := ComputeFields(money("400"), cost, oh)

	assert.True(t, fields.TotalUnitCost.Equal(money("150")))
	assert.True(t, fields.TotalCost.Equal(money("300")))
	assert.True(t, fields.Margin.Equal(money("100")))
	assert.True(t, fields.MarginPercentage.Equal(money("0.25")))
}

func TestComputeFields_NegativeMargin(t *testing.T) {
	// price_unit=120, qty=1, cost=100, fixed overhead=50 -> margin = -30.
	cfg := Config{Mode: ModeFixed}
	cost := ComputeCostSnapshot(money("100"), 1)
	oh := ComputeOverheadSnapshot(cfg, OverheadInputs{HasAnalytic: true, Rate: money("50")}, cost, 1)

	fields := ComputeFields(money("120"), cost, oh)

	assert.True(t, fields.TotalCost.Equal(money("150")))
	assert.True(t, fields.Margin.Equal(money("-30")))
	assert.True(t, fields.MarginPercentage.Equal(money("-0.25")))
}

func TestComputeFields_ZeroSubtotal(t *testing.T) {
	cost := ComputeCostSnapshot(money("100"), 1)
	fields := ComputeFields(types.Zero(), cost, OverheadSnapshot{Unit: types.Zero(), Total: types.Zero()})

	assert.True(t, fields.Margin.Equal(money("-100")))
	assert.True(t, fields.MarginPercentage.IsZero(), "zero subtotal must not divide")
}

func TestComputeFields_Consistency(t *testing.T) {
	// total_cost == total_cost_snapshot + total_overhead_snapshot and
	// margin == price_subtotal - total_cost must hold for arbitrary inputs.
	tests := []struct {
		name     string
		subtotal string
		cost     CostSnapshot
		overhead OverheadSnapshot
	}{
		{"plain", "400", CostSnapshot{money("100"), money("200")}, OverheadSnapshot{money("50"), money("100")}},
		{"no overhead", "99.90", CostSnapshot{money("33.30"), money("99.90")}, OverheadSnapshot{types.Zero(), types.Zero()}},
		{"fractional", "10.50", CostSnapshot{money("3.17"), money("9.51")}, OverheadSnapshot{money("0.25"), money("0.75")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ComputeFields(money(tt.subtotal), tt.cost, tt.overhead)
			assert.True(t, fields.TotalCost.Equal(tt.cost.Total.Add(tt.overhead.Total)))
			assert.True(t, fields.Margin.Equal(money(tt.subtotal).Sub(fields.TotalCost)))
		})
	}
}

func TestAggregateOrder(t *testing.T) {
	lines := []LineTotals{
		{TotalCost: money("300"), Margin: money("100")},
	}

	totals := AggregateOrder(lines, money("400"))

	assert.True(t, totals.TotalCost.Equal(money("300")))
	assert.True(t, totals.TotalMargin.Equal(money("100")))
	assert.True(t, totals.MarginPercentage.Equal(money("0.25")))
}

func TestAggregateOrder_MultipleLines(t *testing.T) {
	lines := []LineTotals{
		{TotalCost: money("300"), Margin: money("100")},
		{TotalCost: money("150"), Margin: money("-30")},
	}

	totals := AggregateOrder(lines, money("520"))

	assert.True(t, totals.TotalCost.Equal(money("450")))
	assert.True(t, totals.TotalMargin.Equal(money("70")))
	assert.True(t, totals.MarginPercentage.Equal(money("70").Div(money("520"))))
}

func TestAggregateOrder_ZeroAmountUntaxed(t *testing.T) {
	lines := []LineTotals{{TotalCost: money("100"), Margin: money("-100")}}

	totals := AggregateOrder(lines, types.Zero())

	assert.True(t, totals.MarginPercentage.IsZero(), "zero amount_untaxed must not divide")
}

func TestAggregateOrder_Empty(t *testing.T) {
	totals := AggregateOrder(nil, money("100"))

	assert.True(t, totals.TotalCost.IsZero())
	assert.True(t, totals.TotalMargin.IsZero())
	assert.True(t, totals.MarginPercentage.IsZero())
}
