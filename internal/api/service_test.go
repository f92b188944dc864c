package api

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/config"
)

func newTestService() *Service {
	s := config.DefaultSettings()
	s.Runs = 20
	return NewService(s)
}

func TestServiceSimulateAlwaysWinning(t *testing.T) {
	res, err := newTestService().Simulate(context.Background(), Request{WinRate: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, 20, res.Runs)
	assert.Equal(t, 61.0, res.Mean)
	assert.Equal(t, 61, res.Games)
	assert.Zero(t, res.Capped)
}

func TestServiceSimulateSeedIsReproducible(t *testing.T) {
	svc := newTestService()
	seed := uint64(11)
	a, err := svc.Simulate(context.Background(), Request{WinRate: 0.5, Runs: 30, Seed: &seed})
	require.NoError(t, err)
	b, err := svc.Simulate(context.Background(), Request{WinRate: 0.5, Runs: 30, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, a.Mean, b.Mean)
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.Equal(t, int(math.Ceil(a.Mean)), a.Games)
}

func TestServiceSimulateStartStars(t *testing.T) {
	start := 90
	res, err := newTestService().Simulate(context.Background(), Request{WinRate: 1, Runs: 1, StartStars: &start})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Games)
}

func TestServiceSimulateRejectsBadInput(t *testing.T) {
	svc := newTestService()
	neg := -1
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"win rate above one", Request{WinRate: 1.2}, ErrInvalidWinRate},
		{"negative win rate", Request{WinRate: -0.1}, ErrInvalidWinRate},
		{"nan win rate", Request{WinRate: math.NaN()}, ErrInvalidWinRate},
		{"inf win rate", Request{WinRate: math.Inf(1)}, ErrInvalidWinRate},
		{"too many runs", Request{WinRate: 0.5, Runs: MaxRuns + 1}, ErrInvalidRuns},
		{"negative runs", Request{WinRate: 0.5, Runs: -2}, ErrInvalidRuns},
		{"negative start", Request{WinRate: 0.5, StartStars: &neg}, ErrInvalidStartStars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Simulate(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, isBadRequest(err))
		})
	}
}

func TestServiceSimulateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService().Simulate(ctx, Request{WinRate: 0.5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceUpdate(t *testing.T) {
	svc := newTestService()

	s := config.DefaultSettings()
	s.Runs = 3
	s.Params.MaxGames = 40
	svc.Update(s)
	assert.Equal(t, 3, svc.Settings().Runs)

	res, err := svc.Simulate(context.Background(), Request{WinRate: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Runs)
	assert.Equal(t, 40, res.Games)
	assert.Equal(t, 3, res.Capped)
}

func TestServiceSimulateUnknownRank(t *testing.T) {
	s := config.DefaultSettings()
	s.Params.RankFloors = []int{40}
	_, err := NewService(s).Simulate(context.Background(), Request{WinRate: 0.5, Runs: 1})
	assert.ErrorIs(t, err, climb.ErrUnknownRank)
	assert.False(t, isBadRequest(err))
}

func TestServiceSimulateDeadlineMidBatch(t *testing.T) {
	// MaxRuns climbs that never win take far longer than the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := newTestService().Simulate(ctx, Request{WinRate: 0, Runs: MaxRuns})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
