package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"salemargin/internal/core/apperror"
	"salemargin/internal/domain/settings"
)

// ParamRepo persists process-wide configuration parameters in sys_params.
// A missing key reads as the empty string.
type ParamRepo struct {
	db *TxManager
}

// NewParamRepo creates a parameter repository.
func NewParamRepo(db *TxManager) *ParamRepo {
	return &ParamRepo{db: db}
}

// GetParam implements settings.ParamStore.
func (r *ParamRepo) GetParam(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetQuerier(ctx).QueryRow(ctx,
		`SELECT value FROM sys_params WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperror.NewDatabase(err)
	}
	return value, nil
}

// SetParam implements settings.ParamStore.
func (r *ParamRepo) SetParam(ctx context.Context, key, value string) error {
	_, err := r.db.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_params (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

var _ settings.ParamStore = (*ParamRepo)(nil)
