package product

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
)

// Service provides business operations for products.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, product *Product) error {
	if err := product.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// Get retrieves a product by ID.
func (s *Service) Get(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.Get(ctx, productID)
}

// List retrieves all products.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// SetStandardPrice updates the product's current unit cost. Lines on
// non-confirmed orders pick the new cost up on their next recomputation;
// confirmed orders keep their snapshots.
func (s *Service) SetStandardPrice(ctx context.Context, productID id.ID, price types.Money) (*Product, error) {
	if price.IsNegative() {
		return nil, apperror.NewValidation("standard price cannot be negative").
			WithDetail("field", "standardPrice")
	}

	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.StandardPrice = price
	p.Touch()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
