package biz

import (
	"context"
	"testing"

	"tumble/internal/conf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	tm, _ := newTestTumble(t, &conf.Game{AutoAck: true, Seed: 42}, nil)

	calls := int64(0)
	r, err := Simulate(context.Background(), tm, 300, func(done int64, _ *Report) { calls = done })
	require.NoError(t, err)
	assert.Equal(t, int64(300), calls)
	assert.Equal(t, int64(300), r.Rounds)
	assert.Equal(t, int64(100), r.ForcedBlobs)
	assert.Equal(t, int64(60), r.ForcedScatters)
	assert.Equal(t, int64(60), r.BonusRounds)
	assert.GreaterOrEqual(t, r.WinRounds, r.ForcedBlobs)
	assert.GreaterOrEqual(t, r.Cascades, r.WinRounds)
	assert.Equal(t, 20.0, r.BonusRate())
	assert.Contains(t, r.String(), "rounds:          300")
}

func TestSimulateNeedsAutoAck(t *testing.T) {
	tm, _ := newTestTumble(t, &conf.Game{Seed: 42}, nil)
	_, err := Simulate(context.Background(), tm, 1, nil)
	assert.ErrorIs(t, err, ErrNotHeadless)
}

func TestSimulateCancelled(t *testing.T) {
	tm, _ := newTestTumble(t, &conf.Game{AutoAck: true, Seed: 42}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := Simulate(ctx, tm, 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, r.Rounds)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33.33, percent(1, 3))
	assert.Equal(t, 0.0, percent(1, 0))
	assert.Equal(t, 0.6667, ratio(2, 3))
}
