// Package analytic provides the analytic account catalog. Analytic accounts
// act as cost centers carrying the overhead rate applied to product
// categories that reference them.
package analytic

import (
	"context"

	"salemargin/internal/core/entity"
	"salemargin/internal/core/types"
)

// Account is an analytic account with an overhead rate.
type Account struct {
	entity.Catalog

	// Overhead is the rate applied to linked categories: an absolute
	// per-unit amount in fixed mode, a percent of unit cost in percentage
	// mode. The mode lives in the process-wide settings, not here.
	Overhead types.Money `db:"overhead" json:"overhead"`
}

// NewAccount creates a new analytic account.
func NewAccount(code, name string) *Account {
	return &Account{
		Catalog:  entity.NewCatalog(code, name),
		Overhead: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	return a.Catalog.Validate(ctx)
}
