package analytic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salemargin/internal/core/apperror"
	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/events"
	"salemargin/internal/domain/settings"
)

type memRepo struct{ items map[id.ID]*Account }

func (r *memRepo) Get(ctx context.Context, aid id.ID) (*Account, error) {
	if a, ok := r.items[aid]; ok {
		return a, nil
	}
	return nil, apperror.NewNotFound("analytic account", aid)
}
func (r *memRepo) GetMany(ctx context.Context, ids []id.ID) ([]*Account, error) {
	out := make([]*Account, 0, len(ids))
	for _, aid := range ids {
		if a, ok := r.items[aid]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memRepo) Create(ctx context.Context, a *Account) error {
	r.items[a.ID] = a
	return nil
}
func (r *memRepo) Update(ctx context.Context, a *Account) error {
	r.items[a.ID] = a
	return nil
}
func (r *memRepo) List(ctx context.Context) ([]*Account, error) {
	out := make([]*Account, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

type capturingNotifier struct {
	channel string
	payload any
	calls   int
}

func (n *capturingNotifier) Notify(ctx context.Context, channel string, payload any) error {
	n.channel = channel
	n.payload = payload
	n.calls++
	return nil
}

func TestSetOverhead_EmitsEvent(t *testing.T) {
	ctx := context.Background()

	account := NewAccount("AA-001", "Overhead EU")
	repo := &memRepo{items: map[id.ID]*Account{account.ID: account}}

	params := settings.NewService(settings.NewMemoryStore())
	require.NoError(t, params.SetOverheadType(ctx, "fixed"))

	notifier := &capturingNotifier{}
	svc := NewService(repo, params, notifier)

	evt, err := svc.SetOverhead(ctx, []id.ID{account.ID}, types.MustMoney("75"))
	require.NoError(t, err)

	assert.True(t, account.Overhead.Equal(types.MustMoney("75")))

	require.NotNil(t, evt)
	assert.Equal(t, events.TypeOverheadUpdated, evt.Type)
	assert.Equal(t, []id.ID{account.ID}, evt.AnalyticAccountIDs)
	assert.Equal(t, "fixed", evt.OverheadType)
	assert.NotEmpty(t, evt.Message)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, events.ChannelOverheadChanged, notifier.channel)
	assert.Equal(t, *evt, notifier.payload)
}

func TestSetOverhead_UnsetModeReportsNone(t *testing.T) {
	ctx := context.Background()

	account := NewAccount("AA-001", "Overhead EU")
	repo := &memRepo{items: map[id.ID]*Account{account.ID: account}}
	svc := NewService(repo, settings.NewService(settings.NewMemoryStore()), events.NopNotifier{})

	evt, err := svc.SetOverhead(ctx, []id.ID{account.ID}, types.MustMoney("10"))
	require.NoError(t, err)
	assert.Equal(t, "None", evt.OverheadType)
}

func TestSetOverhead_UnknownAccount(t *testing.T) {
	repo := &memRepo{items: map[id.ID]*Account{}}
	svc := NewService(repo, settings.NewService(settings.NewMemoryStore()), events.NopNotifier{})

	_, err := svc.SetOverhead(context.Background(), []id.ID{id.New()}, types.MustMoney("10"))
	assert.True(t, apperror.IsNotFound(err))
}

func TestSetOverhead_NoAccounts(t *testing.T) {
	svc := NewService(&memRepo{items: map[id.ID]*Account{}}, settings.NewService(settings.NewMemoryStore()), events.NopNotifier{})

	_, err := svc.SetOverhead(context.Background(), nil, types.MustMoney("10"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
