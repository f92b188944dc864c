package config

import (
	"fmt"
	"strings"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/ladder"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	topRank := ladder.DefaultTopRank
	if cfg.Ladder.TopRank != nil {
		if *cfg.Ladder.TopRank < 1 {
			errs = append(errs, "ladder.top_rank must be >= 1")
		} else {
			topRank = *cfg.Ladder.TopRank
		}
	}
	if cfg.Ladder.BaseWidth != nil && *cfg.Ladder.BaseWidth < 1 {
		errs = append(errs, "ladder.base_width must be >= 1")
	}
	switch ladder.BandRule(cfg.Ladder.BandRule) {
	case "", ladder.RuleModulo, ladder.RuleLegacy:
	default:
		errs = append(errs, "ladder.band_rule must be one of: modulo, legacy")
	}

	inLadder := func(rank int) bool { return rank >= 1 && rank <= topRank }

	if cfg.Climb.StartStars != nil && *cfg.Climb.StartStars < 0 {
		errs = append(errs, "climb.start_stars must be >= 0")
	}
	// unset ranks fall back to defaults, which a shorter ladder may not have
	noStreaks := climb.DefaultNoStreaksAboveRank
	if cfg.Climb.NoStreaksAboveRank != nil {
		noStreaks = *cfg.Climb.NoStreaksAboveRank
	}
	if !inLadder(noStreaks) {
		errs = append(errs, fmt.Sprintf("climb.no_streaks_above_rank must be in [1,%d]", topRank))
	}
	floors := cfg.Climb.RankFloors
	if floors == nil {
		floors = climb.DefaultRankFloors
	}
	for i, r := range floors {
		if !inLadder(r) {
			errs = append(errs, fmt.Sprintf("climb.rank_floors[%d] must be in [1,%d]", i, topRank))
		}
	}
	if cfg.Climb.StreakWins != nil && *cfg.Climb.StreakWins < 1 {
		errs = append(errs, "climb.streak_wins must be >= 1")
	}
	if cfg.Climb.MaxGames != nil && *cfg.Climb.MaxGames < 1 {
		errs = append(errs, "climb.max_games must be >= 1")
	}

	if cfg.Simulate.Runs != nil && *cfg.Simulate.Runs < 1 {
		errs = append(errs, "simulate.runs must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
