package landedcost

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
)

// fakeLedger serves adjustment entries the way the postgres repo does:
// finalized records only, newest cost record first.
type fakeLedger struct {
	entries []AdjustmentLine
}

func (f *fakeLedger) FinalizedAdjustmentsByProduct(ctx context.Context, productID id.ID) ([]AdjustmentLine, error) {
	var out []AdjustmentLine
	for _, e := range f.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CostID.String() > out[j].CostID.String()
	})
	return out, nil
}

func TestResolve_MostRecentRecordOnly(t *testing.T) {
	productID := id.New()
	olderCost := id.New()
	newerCost := id.New() // UUIDv7: created later, sorts higher

	ledger := &fakeLedger{entries: []AdjustmentLine{
		{ID: id.New(), CostID: olderCost, ProductID: productID, Label: "Freight", SplitMethod: "by_quantity", AdditionalLandedCost: types.MustMoney("80"), Quantity: 8},
		{ID: id.New(), CostID: newerCost, ProductID: productID, Label: "Freight", SplitMethod: "by_quantity", AdditionalLandedCost: types.MustMoney("100"), Quantity: 10},
		{ID: id.New(), CostID: newerCost, ProductID: productID, Label: "Customs", SplitMethod: "equal", AdditionalLandedCost: types.MustMoney("50"), Quantity: 10},
	}}

	resolver := NewResolver(ledger)
	breakdown, err := resolver.Resolve(context.Background(), BreakdownQuery{
		ProductID:    productID,
		Quantity:     3,
		CategoryName: "Electronics",
		AnalyticName: "Overhead EU",
	})
	require.NoError(t, err)

	require.Len(t, breakdown.Landed, 2, "only the newest cost record's entries appear")
	assert.Equal(t, "Electronics", breakdown.CategoryName)
	assert.Equal(t, "Overhead EU", breakdown.AnalyticAccount)

	for _, entry := range breakdown.Landed {
		assert.True(t, entry.EstimatedTotal.Equal(entry.PerUnit.Mul(types.FromQuantity(3))),
			"estimated total is per-unit times line quantity")
	}

	// Freight of the newer record: 100/10 per unit, estimated over qty 3.
	assert.True(t, breakdown.Landed[0].PerUnit.Equal(types.MustMoney("10")))
	assert.True(t, breakdown.Landed[0].EstimatedTotal.Equal(types.MustMoney("30")))
}

func TestResolve_EmptyLedger(t *testing.T) {
	resolver := NewResolver(&fakeLedger{})

	breakdown, err := resolver.Resolve(context.Background(), BreakdownQuery{
		ProductID:    id.New(),
		Quantity:     2,
		CategoryName: "Electronics",
	})
	require.NoError(t, err)

	assert.Empty(t, breakdown.Landed)
	assert.Equal(t, "Electronics", breakdown.CategoryName)
	assert.Equal(t, "—", breakdown.AnalyticAccount, "missing analytic name falls back to placeholder")
}

func TestResolve_ZeroAdjustmentQuantity(t *testing.T) {
	productID := id.New()
	costID := id.New()

	resolver := NewResolver(&fakeLedger{entries: []AdjustmentLine{
		{ID: id.New(), CostID: costID, ProductID: productID, AdditionalLandedCost: types.MustMoney("42"), Quantity: 0},
	}})

	breakdown, err := resolver.Resolve(context.Background(), BreakdownQuery{ProductID: productID, Quantity: 5})
	require.NoError(t, err)

	require.Len(t, breakdown.Landed, 1)
	assert.True(t, breakdown.Landed[0].PerUnit.IsZero(), "zero quantity must not divide")
	assert.True(t, breakdown.Landed[0].EstimatedTotal.IsZero())
	assert.Equal(t, "Landed Cost", breakdown.Landed[0].Label, "unnamed cost line gets default label")
}

func TestLandedCostFinalize(t *testing.T) {
	lc := NewLandedCost("LC-001")
	require.Equal(t, StateDraft, lc.State)

	require.NoError(t, lc.Finalize(context.Background()))
	assert.Equal(t, StateDone, lc.State)

	err := lc.Finalize(context.Background())
	assert.Error(t, err, "finalization is terminal")
}
