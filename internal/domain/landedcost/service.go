package landedcost

import (
	"context"

	"salemargin/internal/core/id"
)

// Store is the write boundary for landed cost records.
type Store interface {
	// Get retrieves a landed cost record by ID.
	Get(ctx context.Context, id id.ID) (*LandedCost, error)

	// Create inserts a record with its adjustment lines.
	Create(ctx context.Context, cost *LandedCost, lines []AdjustmentLine) error

	// Update saves a record.
	Update(ctx context.Context, cost *LandedCost) error
}

// Service manages the landed cost lifecycle: records are created in draft
// with their adjustment lines, then finalized. Only finalized records feed
// breakdowns.
type Service struct {
	store Store
}

// NewService creates a landed cost service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create inserts a draft record with its adjustment lines. Line IDs and the
// cost linkage are assigned here.
func (s *Service) Create(ctx context.Context, number string, lines []AdjustmentLine) (*LandedCost, error) {
	cost := NewLandedCost(number)
	if err := cost.Validate(ctx); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].ID = id.New()
		lines[i].CostID = cost.ID
	}

	if err := s.store.Create(ctx, cost, lines); err != nil {
		return nil, err
	}
	return cost, nil
}

// Get retrieves a record by ID.
func (s *Service) Get(ctx context.Context, costID id.ID) (*LandedCost, error) {
	return s.store.Get(ctx, costID)
}

// Finalize transitions a record to done, making its adjustment entries
// visible to breakdowns.
func (s *Service) Finalize(ctx context.Context, costID id.ID) (*LandedCost, error) {
	cost, err := s.store.Get(ctx, costID)
	if err != nil {
		return nil, err
	}

	if err := cost.Finalize(ctx); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, cost); err != nil {
		return nil, err
	}
	return cost, nil
}
