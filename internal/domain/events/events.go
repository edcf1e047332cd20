// Package events defines the domain events this service emits and the
// delivery boundary. Delivery itself (bus, queue, websocket fan-out) is the
// surrounding application's concern; the core only hands a payload to a
// Notifier and moves on.
package events

import (
	"context"

	"salemargin/internal/core/id"
)

// ChannelOverheadChanged is the pub/sub channel overhead-rate changes are
// announced on.
const ChannelOverheadChanged = "sale_margin_overhead_changed"

// TypeOverheadUpdated is the event type for analytic overhead mutations.
const TypeOverheadUpdated = "overhead_updated"

// OverheadChanged is emitted when an analytic account's overhead rate is
// mutated. Consumers decide whether to recompute or flag stale margins; the
// core never reacts to its own event.
type OverheadChanged struct {
	Type               string  `json:"type"`
	AnalyticAccountIDs []id.ID `json:"analytic_account_ids"`
	OverheadType       string  `json:"overhead_type"`
	Message            string  `json:"message"`
}

// NewOverheadChanged builds the event payload for the given accounts.
// An unset overhead type is reported as "None" on the wire.
func NewOverheadChanged(accountIDs []id.ID, overheadType string) OverheadChanged {
	if overheadType == "" {
		overheadType = "None"
	}
	return OverheadChanged{
		Type:               TypeOverheadUpdated,
		AnalyticAccountIDs: accountIDs,
		OverheadType:       overheadType,
		Message:            "Analytic overhead changed - refresh margins if affected",
	}
}

// Notifier delivers event payloads to a channel, fire-and-forget from the
// emitter's point of view.
type Notifier interface {
	Notify(ctx context.Context, channel string, payload any) error
}

// NopNotifier discards events. Useful for tests and tooling that do not care
// about delivery.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(ctx context.Context, channel string, payload any) error {
	return nil
}

var _ Notifier = NopNotifier{}
