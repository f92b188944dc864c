// types.go
package config

import (
	"github.com/xtding233/legend-sim/internal/climb"
)

// RawConfig is a YAML layer as read from disk. Nil or empty fields are unset.
type RawConfig struct {
	Version  string         `yaml:"version"`
	Ladder   LadderConfig   `yaml:"ladder"`
	Climb    ClimbConfig    `yaml:"climb"`
	Simulate SimulateConfig `yaml:"simulate"`
	Notes    string         `yaml:"notes,omitempty"`
}

type LadderConfig struct {
	TopRank   *int   `yaml:"top_rank,omitempty"`
	BaseWidth *int   `yaml:"base_width,omitempty"`
	BandRule  string `yaml:"band_rule,omitempty"` // "modulo" | "legacy"
}

type ClimbConfig struct {
	StartStars         *int  `yaml:"start_stars,omitempty"`
	NoStreaksAboveRank *int  `yaml:"no_streaks_above_rank,omitempty"`
	RankFloors         []int `yaml:"rank_floors,omitempty"`
	StreakWins         *int  `yaml:"streak_wins,omitempty"`
	MaxGames           *int  `yaml:"max_games,omitempty"`
}

type SimulateConfig struct {
	Runs *int    `yaml:"runs,omitempty"`
	Seed *uint64 `yaml:"seed,omitempty"`
}

// DefaultRuns is the sample size used by the prompt.
const DefaultRuns = 100

// Settings are the normalized values used by the simulator.
type Settings struct {
	Params  climb.Params
	Runs    int
	Seed    *uint64 // nil => crypto RNG
	Version string  // effective config version for tracing
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{Params: climb.DefaultParams(), Runs: DefaultRuns}
}

// RNG returns a generator for one batch of climbs.
func (s Settings) RNG() climb.RandomSource {
	if s.Seed != nil {
		return climb.NewSeededRNG(*s.Seed)
	}
	return climb.DefaultRNG()
}
