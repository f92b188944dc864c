package climb

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stdErr returns the standard error of the sample mean.
func stdErr(xs []int) float64 {
	n := float64(len(xs))
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / n
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	return math.Sqrt(acc/(n-1)) / math.Sqrt(n)
}

func TestRunMonteCarloEmpty(t *testing.T) {
	s, err := RunMonteCarlo(0, 0.5, DefaultParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)

	mean, err := Simulate(-1, 0.5, DefaultParams(), nil)
	require.NoError(t, err)
	assert.Zero(t, mean)
}

func TestRunMonteCarloDeterministicExtremes(t *testing.T) {
	s, err := RunMonteCarlo(10, 1.0, DefaultParams(), NewSeededRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 10, s.Runs)
	assert.Equal(t, 61.0, s.Mean)
	assert.Zero(t, s.Capped)
	assert.Len(t, s.Samples, 10)

	p := DefaultParams()
	p.MaxGames = 300
	s, err = RunMonteCarlo(5, 0.0, p, NewSeededRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 300.0, s.Mean)
	assert.Equal(t, 5, s.Capped)
}

func TestRunMonteCarloPropagatesErrors(t *testing.T) {
	p := DefaultParams()
	p.RankFloors = []int{99}
	_, err := RunMonteCarlo(3, 0.5, p, NewSeededRNG(1))
	assert.ErrorIs(t, err, ErrUnknownRank)

	_, err = Simulate(3, 0.5, p, NewSeededRNG(1))
	assert.ErrorIs(t, err, ErrUnknownRank)
}

func TestSimulateMatchesSummaryMean(t *testing.T) {
	s, err := RunMonteCarlo(50, 0.6, DefaultParams(), NewSeededRNG(9))
	require.NoError(t, err)
	mean, err := Simulate(50, 0.6, DefaultParams(), NewSeededRNG(9))
	require.NoError(t, err)
	assert.Equal(t, s.Mean, mean)
}

func TestSimulateConverges(t *testing.T) {
	const n = 2000
	a, err := RunMonteCarlo(n, 0.5, DefaultParams(), NewSeededRNG(101))
	require.NoError(t, err)
	b, err := RunMonteCarlo(n, 0.5, DefaultParams(), NewSeededRNG(202))
	require.NoError(t, err)

	seA, seB := stdErr(a.Samples), stdErr(b.Samples)
	tol := 4 * math.Sqrt(seA*seA+seB*seB)
	assert.InDelta(t, a.Mean, b.Mean, tol)

	small, err := RunMonteCarlo(50, 0.5, DefaultParams(), NewSeededRNG(303))
	require.NoError(t, err)
	assert.Less(t, seA, stdErr(small.Samples))
}

func TestHigherWinRateClimbsFaster(t *testing.T) {
	slow, err := Simulate(500, 0.5, DefaultParams(), NewSeededRNG(5))
	require.NoError(t, err)
	fast, err := Simulate(500, 0.7, DefaultParams(), NewSeededRNG(5))
	require.NoError(t, err)
	assert.Less(t, fast, slow)
}

func TestCappedCountsOnlyUnfinishedClimbs(t *testing.T) {
	// 61 games are exactly enough at win rate 1
	p := DefaultParams()
	p.MaxGames = 61
	s, err := RunMonteCarlo(3, 1.0, p, NewSeededRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 61.0, s.Mean)
	assert.Zero(t, s.Capped)

	p.MaxGames = 60
	s, err = RunMonteCarlo(3, 1.0, p, NewSeededRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.Mean)
	assert.Equal(t, 3, s.Capped)
}

// cancelAfter cancels its context once a fixed number of games were drawn.
type cancelAfter struct {
	RandomSource
	left   int
	cancel context.CancelFunc
}

func (c *cancelAfter) Float64() float64 {
	c.left--
	if c.left == 0 {
		c.cancel()
	}
	return c.RandomSource.Float64()
}

func TestRunMonteCarloContextStopsBetweenClimbs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// cancels during the second climb; win rate 1 climbs take 61 games
	rng := &cancelAfter{RandomSource: NewSeededRNG(1), left: 70, cancel: cancel}
	_, err := RunMonteCarloContext(ctx, 100, 1.0, DefaultParams(), rng)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 122-70, -rng.left, "the climb in progress finishes, the rest never start")

	_, err = RunMonteCarloContext(ctx, 3, 0.5, DefaultParams(), NewSeededRNG(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMonteCarloSeedReplaysBatch(t *testing.T) {
	a, err := RunMonteCarlo(20, 0.55, DefaultParams(), NewSeededRNG(77))
	require.NoError(t, err)
	b, err := RunMonteCarloContext(context.Background(), 20, 0.55, DefaultParams(), NewSeededRNG(77))
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)

	// a shorter batch is a prefix of the longer one
	c, err := RunMonteCarlo(5, 0.55, DefaultParams(), NewSeededRNG(77))
	require.NoError(t, err)
	assert.Equal(t, a.Samples[:5], c.Samples)
}
