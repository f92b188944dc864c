// resolve.go
package config

import (
	"fmt"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/ladder"
)

// Resolve validates cfg and lays it over the built-in defaults.
func Resolve(cfg RawConfig) (Settings, error) {
	if err := ValidateRaw(cfg); err != nil {
		return Settings{}, err
	}

	s := DefaultSettings()
	s.Version = cfg.Version

	if cfg.Ladder.TopRank != nil {
		s.Params.Ladder.TopRank = *cfg.Ladder.TopRank
	}
	if cfg.Ladder.BaseWidth != nil {
		s.Params.Ladder.BaseWidth = *cfg.Ladder.BaseWidth
	}
	if cfg.Ladder.BandRule != "" {
		s.Params.Ladder.Rule = ladder.BandRule(cfg.Ladder.BandRule)
	}

	if cfg.Climb.StartStars != nil {
		s.Params.StartStars = *cfg.Climb.StartStars
	}
	if cfg.Climb.NoStreaksAboveRank != nil {
		s.Params.NoStreaksAboveRank = *cfg.Climb.NoStreaksAboveRank
	}
	if cfg.Climb.RankFloors != nil {
		s.Params.RankFloors = append([]int{}, cfg.Climb.RankFloors...)
	}
	if cfg.Climb.StreakWins != nil {
		s.Params.StreakWins = *cfg.Climb.StreakWins
	}
	if cfg.Climb.MaxGames != nil {
		s.Params.MaxGames = *cfg.Climb.MaxGames
	}

	if cfg.Simulate.Runs != nil {
		s.Runs = *cfg.Simulate.Runs
	}
	if cfg.Simulate.Seed != nil {
		seed := *cfg.Simulate.Seed
		s.Seed = &seed
	}

	if _, err := climb.NewRules(ladder.Build(s.Params.Ladder), s.Params); err != nil {
		return Settings{}, fmt.Errorf("config validation failed: %w", err)
	}
	return s, nil
}
