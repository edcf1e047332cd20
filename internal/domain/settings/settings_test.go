package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salemargin/internal/domain/margin"
)

func TestOverheadConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored string
		want   margin.Mode
	}{
		{"missing key", "\x00skip", margin.ModeNone},
		{"empty", "", margin.ModeNone},
		{"fixed", "fixed", margin.ModeFixed},
		{"percentage", "percentage", margin.ModePercentage},
		{"garbage behaves as none", "weird", margin.ModeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != "\x00skip" {
				require.NoError(t, store.SetParam(ctx, ParamOverheadType, tt.stored))
			}

			cfg, err := NewService(store).OverheadConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestSetOverheadType(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	require.NoError(t, svc.SetOverheadType(ctx, "fixed"))
	got, err := svc.OverheadType(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got)

	require.NoError(t, svc.SetOverheadType(ctx, ""), "clearing the mode is allowed")

	err = svc.SetOverheadType(ctx, "flat")
	assert.Error(t, err, "unknown modes are rejected at the write boundary")
}
