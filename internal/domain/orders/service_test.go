package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/domain/settings"
)

// --- In-memory fakes ---

type memProducts struct{ items map[id.ID]*product.Product }

func (r *memProducts) Get(ctx context.Context, pid id.ID) (*product.Product, error) {
	if p, ok := r.items[pid]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", pid)
}
func (r *memProducts) Create(ctx context.Context, p *product.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *memProducts) Update(ctx context.Context, p *product.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *memProducts) List(ctx context.Context) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

type memCategories struct{ items map[id.ID]*category.Category }

func (r *memCategories) Get(ctx context.Context, cid id.ID) (*category.Category, error) {
	if c, ok := r.items[cid]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("category", cid)
}
func (r *memCategories) Create(ctx context.Context, c *category.Category) error {
	r.items[c.ID] = c
	return nil
}
func (r *memCategories) Update(ctx context.Context, c *category.Category) error {
	r.items[c.ID] = c
	return nil
}
func (r *memCategories) List(ctx context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

type memAnalytics struct{ items map[id.ID]*analytic.Account }

func (r *memAnalytics) Get(ctx context.Context, aid id.ID) (*analytic.Account, error) {
	if a, ok := r.items[aid]; ok {
		return a, nil
	}
	return nil, apperror.NewNotFound("analytic account", aid)
}
func (r *memAnalytics) GetMany(ctx context.Context, ids []id.ID) ([]*analytic.Account, error) {
	out := make([]*analytic.Account, 0, len(ids))
	for _, aid := range ids {
		if a, ok := r.items[aid]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memAnalytics) Create(ctx context.Context, a *analytic.Account) error {
	r.items[a.ID] = a
	return nil
}
func (r *memAnalytics) Update(ctx context.Context, a *analytic.Account) error {
	r.items[a.ID] = a
	return nil
}
func (r *memAnalytics) List(ctx context.Context) ([]*analytic.Account, error) {
	out := make([]*analytic.Account, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

type memOrders struct {
	items      map[id.ID]*SaleOrder
	products   *memProducts
	categories *memCategories
}

func (r *memOrders) Get(ctx context.Context, oid id.ID) (*SaleOrder, error) {
	if o, ok := r.items[oid]; ok {
		return o, nil
	}
	return nil, apperror.NewNotFound("sale order", oid)
}
func (r *memOrders) Create(ctx context.Context, o *SaleOrder) error {
	r.items[o.ID] = o
	return nil
}
func (r *memOrders) Update(ctx context.Context, o *SaleOrder) error {
	r.items[o.ID] = o
	return nil
}
func (r *memOrders) List(ctx context.Context) ([]*SaleOrder, error) {
	out := make([]*SaleOrder, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	return out, nil
}
func (r *memOrders) ListDraftByAnalyticAccounts(ctx context.Context, accountIDs []id.ID) ([]*SaleOrder, error) {
	wanted := make(map[id.ID]bool, len(accountIDs))
	for _, aid := range accountIDs {
		wanted[aid] = true
	}

	var out []*SaleOrder
	for _, o := range r.items {
		if o.State != StateDraft {
			continue
		}
		for _, line := range o.Lines {
			p, ok := r.products.items[line.ProductID]
			if !ok {
				continue
			}
			cat, ok := r.categories.items[p.CategoryID]
			if !ok || !cat.HasAnalyticAccount() {
				continue
			}
			if wanted[*cat.AnalyticAccountID] {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

type memLedger struct{ entries []landedcost.AdjustmentLine }

func (f *memLedger) FinalizedAdjustmentsByProduct(ctx context.Context, productID id.ID) ([]landedcost.AdjustmentLine, error) {
	var out []landedcost.AdjustmentLine
	for _, e := range f.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- Fixture ---

type fixture struct {
	svc      *Service
	store    *settings.MemoryStore
	products *memProducts
	analytic *analytic.Account
	product  *product.Product
	ledger   *memLedger
}

func newFixture(t *testing.T, overheadType string) *fixture {
	t.Helper()

	account := analytic.NewAccount("AA-001", "Overhead EU")
	account.Overhead = types.MustMoney("50")

	cat := category.NewCategory("CAT-001", "Electronics")
	cat.AnalyticAccountID = &account.ID

	prod := product.NewProduct("PRD-001", "Widget", cat.ID)
	prod.StandardPrice = types.MustMoney("100")

	products := &memProducts{items: map[id.ID]*product.Product{prod.ID: prod}}
	categories := &memCategories{items: map[id.ID]*category.Category{cat.ID: cat}}
	analytics := &memAnalytics{items: map[id.ID]*analytic.Account{account.ID: account}}
	orderRepo := &memOrders{items: map[id.ID]*SaleOrder{}, products: products, categories: categories}

	store := settings.NewMemoryStore()
	params := settings.NewService(store)
	require.NoError(t, params.SetOverheadType(context.Background(), overheadType))

	ledger := &memLedger{}
	svc := NewService(orderRepo, products, categories, analytics, params, landedcost.NewResolver(ledger), nil)

	return &fixture{
		svc:      svc,
		store:    store,
		products: products,
		analytic: account,
		product:  prod,
		ledger:   ledger,
	}
}

func (f *fixture) createOrder(t *testing.T, priceUnit string, qty float64) *SaleOrder {
	t.Helper()
	order := NewSaleOrder("SO-001", "Test Customer")
	order.AddLine(f.product.ID, qty, types.MustMoney(priceUnit), types.Zero())
	require.NoError(t, f.svc.Create(context.Background(), order))
	return order
}

// --- Tests ---

func TestCreate_FixedOverheadEndToEnd(t *testing.T) {
	f := newFixture(t, "fixed")
	order := f.createOrder(t, "200", 2)

	line := order.Lines[0]
	assert.True(t, line.CostSnapshot.Equal(types.MustMoney("100")))
	assert.True(t, line.TotalCostSnapshot.Equal(types.MustMoney("200")))
	assert.True(t, line.OverheadSnapshot.Equal(types.MustMoney("50")))
	assert.True(t, line.TotalOverheadSnapshot.Equal(types.MustMoney("100")))
	assert.True(t, line.TotalUnitCost.Equal(types.MustMoney("150")))
	assert.True(t, line.TotalCost.Equal(types.MustMoney("300")))
	assert.True(t, line.PriceSubtotal.Equal(types.MustMoney("400")))
	assert.True(t, line.Margin.Equal(types.MustMoney("100")))
	assert.True(t, line.MarginPercentage.Equal(types.MustMoney("0.25")))

	assert.True(t, order.AmountUntaxed.Equal(types.MustMoney("400")))
	assert.True(t, order.TotalCost.Equal(types.MustMoney("300")))
	assert.True(t, order.TotalMargin.Equal(types.MustMoney("100")))
	assert.True(t, order.MarginPercentage.Equal(types.MustMoney("0.25")))
}

func TestCreate_PercentageOverhead(t *testing.T) {
	f := newFixture(t, "percentage")
	f.analytic.Overhead = types.MustMoney("10")

	order := f.createOrder(t, "200", 2)

	line := order.Lines[0]
	// 100 * 10% * 2, and the total scales by quantity once more.
	assert.True(t, line.OverheadSnapshot.Equal(types.MustMoney("20")))
	assert.True(t, line.TotalOverheadSnapshot.Equal(types.MustMoney("40")))
}

func TestCreate_NoOverheadWhenUnset(t *testing.T) {
	f := newFixture(t, "")
	order := f.createOrder(t, "200", 2)

	line := order.Lines[0]
	assert.True(t, line.OverheadSnapshot.IsZero())
	assert.True(t, line.TotalOverheadSnapshot.IsZero())
	assert.True(t, line.TotalCost.Equal(types.MustMoney("200")))
}

func TestCreate_NoAnalyticAccount(t *testing.T) {
	f := newFixture(t, "fixed")

	// Product in a category without analytic linkage.
	bare := category.NewCategory("CAT-002", "Misc")
	prodNoAnalytic := product.NewProduct("PRD-002", "Gadget", bare.ID)
	prodNoAnalytic.StandardPrice = types.MustMoney("10")
	f.products.items[prodNoAnalytic.ID] = prodNoAnalytic

	order := NewSaleOrder("SO-002", "Test Customer")
	order.AddLine(prodNoAnalytic.ID, 4, types.MustMoney("20"), types.Zero())
	require.NoError(t, f.svc.Create(context.Background(), order))

	assert.True(t, order.Lines[0].OverheadSnapshot.IsZero())
	assert.True(t, order.Lines[0].TotalCost.Equal(types.MustMoney("40")))
}

func TestUpdateLine_RecomputesAndKeepsConsistency(t *testing.T) {
	f := newFixture(t, "fixed")
	order := f.createOrder(t, "200", 2)
	ctx := context.Background()

	qty := 3.0
	updated, err := f.svc.UpdateLine(ctx, order.ID, order.Lines[0].ID, LinePatch{Quantity: &qty})
	require.NoError(t, err)

	line := updated.Lines[0]
	assert.True(t, line.TotalCostSnapshot.Equal(types.MustMoney("300")))
	assert.True(t, line.TotalOverheadSnapshot.Equal(types.MustMoney("150")))
	assert.True(t, line.PriceSubtotal.Equal(types.MustMoney("600")))

	// Consistency invariant.
	assert.True(t, line.TotalCost.Equal(line.TotalCostSnapshot.Add(line.TotalOverheadSnapshot)))
	assert.True(t, line.Margin.Equal(line.PriceSubtotal.Sub(line.TotalCost)))
}

func TestUpdateLine_Discount(t *testing.T) {
	f := newFixture(t, "")
	order := f.createOrder(t, "200", 2)
	ctx := context.Background()

	discount := types.MustMoney("25")
	updated, err := f.svc.UpdateLine(ctx, order.ID, order.Lines[0].ID, LinePatch{Discount: &discount})
	require.NoError(t, err)

	line := updated.Lines[0]
	assert.True(t, line.PriceSubtotal.Equal(types.MustMoney("300")), "subtotal honors the discount")
	assert.True(t, updated.AmountUntaxed.Equal(types.MustMoney("300")))
}

func TestFreeze_AfterConfirmation(t *testing.T) {
	f := newFixture(t, "fixed")
	order := f.createOrder(t, "200", 2)
	ctx := context.Background()

	_, err := f.svc.Confirm(ctx, order.ID)
	require.NoError(t, err)

	// Mutate every upstream input after confirmation.
	f.product.StandardPrice = types.MustMoney("999")
	f.analytic.Overhead = types.MustMoney("80")
	require.NoError(t, f.store.SetParam(ctx, settings.ParamOverheadType, "percentage"))

	// Repeated recomputation must be inert.
	for i := 0; i < 3; i++ {
		got, err := f.svc.Recompute(ctx, order.ID, "manual")
		require.NoError(t, err)

		line := got.Lines[0]
		assert.True(t, line.CostSnapshot.Equal(types.MustMoney("100")))
		assert.True(t, line.OverheadSnapshot.Equal(types.MustMoney("50")))
		assert.True(t, line.TotalCost.Equal(types.MustMoney("300")))
		assert.True(t, line.Margin.Equal(types.MustMoney("100")))
		assert.True(t, got.TotalMargin.Equal(types.MustMoney("100")))
	}
}

func TestConfirm_Twice(t *testing.T) {
	f := newFixture(t, "")
	order := f.createOrder(t, "200", 1)
	ctx := context.Background()

	_, err := f.svc.Confirm(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, order.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOrderConfirmed, appErr.Code)
}

func TestAddLine_ConfirmedOrderRejected(t *testing.T) {
	f := newFixture(t, "")
	order := f.createOrder(t, "200", 1)
	ctx := context.Background()

	_, err := f.svc.Confirm(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.svc.AddLine(ctx, order.ID, f.product.ID, 1, types.MustMoney("10"), types.Zero())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOrderConfirmed, appErr.Code)
}

func TestRecomputeForAnalyticAccounts(t *testing.T) {
	f := newFixture(t, "fixed")
	ctx := context.Background()

	draft := f.createOrder(t, "200", 2)

	confirmed := NewSaleOrder("SO-003", "Other Customer")
	confirmed.AddLine(f.product.ID, 1, types.MustMoney("200"), types.Zero())
	require.NoError(t, f.svc.Create(ctx, confirmed))
	_, err := f.svc.Confirm(ctx, confirmed.ID)
	require.NoError(t, err)

	// Rate change: drafts follow, confirmed orders keep their snapshots.
	f.analytic.Overhead = types.MustMoney("80")

	count, err := f.svc.RecomputeForAnalyticAccounts(ctx, []id.ID{f.analytic.ID}, "overhead_updated")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the draft order is recomputed")

	refreshedDraft, err := f.svc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, refreshedDraft.Lines[0].OverheadSnapshot.Equal(types.MustMoney("80")))

	refreshedConfirmed, err := f.svc.Get(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.True(t, refreshedConfirmed.Lines[0].OverheadSnapshot.Equal(types.MustMoney("50")))
}

func TestLineBreakdown_ResolvesNames(t *testing.T) {
	f := newFixture(t, "fixed")
	order := f.createOrder(t, "200", 3)

	costID := id.New()
	f.ledger.entries = []landedcost.AdjustmentLine{
		{ID: id.New(), CostID: costID, ProductID: f.product.ID, Label: "Freight", SplitMethod: "by_quantity", AdditionalLandedCost: types.MustMoney("90"), Quantity: 9},
	}

	breakdown, err := f.svc.LineBreakdown(context.Background(), order.ID, order.Lines[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Electronics", breakdown.CategoryName)
	assert.Equal(t, "Overhead EU", breakdown.AnalyticAccount)
	require.Len(t, breakdown.Landed, 1)
	assert.True(t, breakdown.Landed[0].PerUnit.Equal(types.MustMoney("10")))
	assert.True(t, breakdown.Landed[0].EstimatedTotal.Equal(types.MustMoney("30")))
}

func TestZeroPriceSubtotal(t *testing.T) {
	f := newFixture(t, "fixed")
	order := f.createOrder(t, "0", 2)

	line := order.Lines[0]
	assert.True(t, line.PriceSubtotal.IsZero())
	assert.True(t, line.MarginPercentage.IsZero(), "zero subtotal must not divide")
	assert.True(t, order.MarginPercentage.IsZero(), "zero amount_untaxed must not divide")
}
