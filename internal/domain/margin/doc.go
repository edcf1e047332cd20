// Package margin implements the sale margin computation core: the cost
// snapshot, the overhead allocation derived from the process-wide overhead
// configuration, the per-line margin fields, and the order-level aggregation.
//
// Every function in this package is a deterministic pure function of its
// declared inputs. Nothing here reads global state, touches storage, or
// returns errors; zero denominators degrade to zero results. The freeze
// policy (no recomputation once an order is confirmed) is enforced by the
// orders service, which simply stops calling into this package for confirmed
// orders; the dependency chain snapshot -> overhead -> margin -> totals is
// driven explicitly from there.
//
// Known asymmetry: in percentage mode the per-unit overhead figure is already
// multiplied by quantity, and the total multiplies by quantity once more, so
// the total scales with quantity squared while fixed mode scales linearly.
// This matches the allocation rules the business signed off on and is kept
// as-is; see TestOverheadPercentageQuantityAsymmetry before changing it.
package margin
