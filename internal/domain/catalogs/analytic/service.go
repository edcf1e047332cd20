package analytic

import (
	"context"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/events"
	"salemargin/internal/domain/settings"
	"salemargin/pkg/logger"
)

// Service provides business operations for analytic accounts.
type Service struct {
	repo     Repository
	params   *settings.Service
	notifier events.Notifier
}

// NewService creates a new analytic account service. The notifier may be
// events.NopNotifier{} when no delivery channel is wired.
func NewService(repo Repository, params *settings.Service, notifier events.Notifier) *Service {
	return &Service{
		repo:     repo,
		params:   params,
		notifier: notifier,
	}
}

// Create validates and persists a new account.
func (s *Service) Create(ctx context.Context, account *Account) error {
	if err := account.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, account)
}

// Get retrieves an account by ID.
func (s *Service) Get(ctx context.Context, accountID id.ID) (*Account, error) {
	return s.repo.Get(ctx, accountID)
}

// List retrieves all accounts.
func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

// SetOverhead updates the overhead rate on a set of accounts and announces
// the change. The event is returned to the caller and handed to the notifier
// fire-and-forget; a delivery failure is logged, never surfaced, and the
// service does not trigger any recomputation itself.
func (s *Service) SetOverhead(ctx context.Context, accountIDs []id.ID, rate types.Money) (*events.OverheadChanged, error) {
	if len(accountIDs) == 0 {
		return nil, apperror.NewValidation("at least one account is required").
			WithDetail("field", "accountIds")
	}

	accounts, err := s.repo.GetMany(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(accountIDs) {
		return nil, apperror.NewNotFound("analytic account", accountIDs)
	}

	for _, account := range accounts {
		account.Overhead = rate
		account.Touch()
		if err := s.repo.Update(ctx, account); err != nil {
			return nil, err
		}
	}

	overheadType, err := s.params.OverheadType(ctx)
	if err != nil {
		logger.Warn(ctx, "read overhead type for event", "error", err)
		overheadType = ""
	}

	evt := events.NewOverheadChanged(accountIDs, overheadType)
	if err := s.notifier.Notify(ctx, events.ChannelOverheadChanged, evt); err != nil {
		logger.Warn(ctx, "overhead change notification failed",
			"channel", events.ChannelOverheadChanged,
			"error", err,
		)
	}

	return &evt, nil
}
