package climb

// PlayGame draws one game outcome: a win iff the draw is below winRate.
// winRate is not range-checked; values >= 1 always win and values <= 0
// always lose.
func PlayGame(winRate float64, rng RandomSource) bool {
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < winRate
}
