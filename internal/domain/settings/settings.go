// Package settings provides the process-wide parameter store boundary for
// the overhead configuration. The computation core never reads parameters
// itself; callers load a margin.Config here and pass it down explicitly.
package settings

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/domain/margin"
)

// ParamOverheadType is the key selecting the overhead allocation mode.
// Allowed values: "" (none), "fixed", "percentage".
const ParamOverheadType = "sale_margin.overhead_type"

// ParamStore is the externally persisted key/value parameter store.
// A missing key reads as the empty string, not an error.
type ParamStore interface {
	GetParam(ctx context.Context, key string) (string, error)
	SetParam(ctx context.Context, key, value string) error
}

// Service exposes typed access to the margin-related parameters.
//
// Writes are not serialized against concurrent batch recomputation; the
// surrounding application is expected to order configuration changes and
// recomputes externally.
type Service struct {
	store ParamStore
}

// NewService creates a settings service over a parameter store.
func NewService(store ParamStore) *Service {
	return &Service{store: store}
}

// OverheadType returns the raw configured overhead type.
func (s *Service) OverheadType(ctx context.Context) (string, error) {
	return s.store.GetParam(ctx, ParamOverheadType)
}

// SetOverheadType updates the overhead type. Only the known values are
// accepted; unknown strings would silently behave as "none" and are almost
// certainly caller mistakes.
func (s *Service) SetOverheadType(ctx context.Context, value string) error {
	switch margin.Mode(value) {
	case margin.ModeNone, margin.ModeFixed, margin.ModePercentage:
	default:
		return apperror.NewValidation("unknown overhead type").
			WithDetail("field", "overheadType").
			WithDetail("value", value)
	}
	return s.store.SetParam(ctx, ParamOverheadType, value)
}

// OverheadConfig reads the parameter once and maps it to a margin.Config.
// Batch recomputations call this exactly once and reuse the result for every
// line so the whole batch sees one consistent mode.
func (s *Service) OverheadConfig(ctx context.Context) (margin.Config, error) {
	raw, err := s.store.GetParam(ctx, ParamOverheadType)
	if err != nil {
		return margin.Config{}, err
	}
	return margin.Config{Mode: margin.ParseMode(raw)}, nil
}
