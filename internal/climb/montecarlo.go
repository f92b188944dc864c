package climb

import "context"

// Summary reports the result of repeated climbs.
type Summary struct {
	Runs   int
	Mean   float64
	Capped int // climbs stopped by MaxGames rather than reaching Legend
	// raw game counts per climb
	Samples []int `json:"-"`
}

func summarize(xs []int, capped int) Summary {
	n := len(xs)
	if n == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	return Summary{
		Runs:    n,
		Mean:    sum / float64(n),
		Capped:  capped,
		Samples: xs,
	}
}

// RunMonteCarlo repeats independent climbs sharing one random stream.
func RunMonteCarlo(n int, winRate float64, p Params, rng RandomSource) (Summary, error) {
	return RunMonteCarloContext(context.Background(), n, winRate, p, rng)
}

// RunMonteCarloContext is RunMonteCarlo that stops between climbs once ctx
// is done, returning ctx.Err().
func RunMonteCarloContext(ctx context.Context, n int, winRate float64, p Params, rng RandomSource) (Summary, error) {
	if n <= 0 {
		return Summary{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, n)
	capped := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		c, err := climbOnce(winRate, p, rng)
		if err != nil {
			return Summary{}, err
		}
		samples[i] = c.Games
		if !c.Reached() {
			capped++
		}
	}
	return summarize(samples, capped), nil
}

// Simulate returns the mean number of games over n climbs.
func Simulate(n int, winRate float64, p Params, rng RandomSource) (float64, error) {
	s, err := RunMonteCarlo(n, winRate, p, rng)
	if err != nil {
		return 0, err
	}
	return s.Mean, nil
}
