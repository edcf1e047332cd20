package category

import (
	"context"

	"salemargin/internal/core/id"
)

// Service provides business operations for product categories.
type Service struct {
	repo Repository
}

// NewService creates a new category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new category.
func (s *Service) Create(ctx context.Context, category *Category) error {
	if err := category.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, category)
}

// Get retrieves a category by ID.
func (s *Service) Get(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.Get(ctx, categoryID)
}

// List retrieves all categories.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// SetAnalyticAccount links or unlinks (nil) the category's analytic account.
// Existing margin snapshots are not touched; the new link takes effect on the
// next recomputation of non-confirmed lines.
func (s *Service) SetAnalyticAccount(ctx context.Context, categoryID id.ID, accountID *id.ID) (*Category, error) {
	cat, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	cat.AnalyticAccountID = accountID
	cat.Touch()

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}
