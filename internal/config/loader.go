package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates the default and profile files.
type Paths struct {
	BaseDir string // e.g. /etc/legend-sim
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads YAML layers and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name, "" for default only
}

// NewLoader creates a loader rooted at baseDir. An empty baseDir yields
// the built-in settings only.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the files this loader reads for profile, in merge order.
func (l *Loader) Paths(profile string) []string {
	if l.paths.BaseDir == "" {
		return nil
	}
	out := []string{l.paths.DefaultPath()}
	if profile != "" {
		out = append(out, l.paths.ProfilePath(profile))
	}
	return out
}

// LoadMerged returns the merged RawConfig for profile, without defaults.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	if l.paths.BaseDir == "" {
		return RawConfig{}, nil
	}

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[""] = defCfg
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Load merges, validates and resolves profile into Settings.
func (l *Loader) Load(profile string) (Settings, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw)
}

// Invalidate clears the cache. Call after the watcher sees a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads one file. Missing files return a zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field set in b wins.
// Slices are replaced, not appended.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// ladder
	if b.Ladder.TopRank != nil {
		out.Ladder.TopRank = b.Ladder.TopRank
	}
	if b.Ladder.BaseWidth != nil {
		out.Ladder.BaseWidth = b.Ladder.BaseWidth
	}
	if b.Ladder.BandRule != "" {
		out.Ladder.BandRule = b.Ladder.BandRule
	}

	// climb
	if b.Climb.StartStars != nil {
		out.Climb.StartStars = b.Climb.StartStars
	}
	if b.Climb.NoStreaksAboveRank != nil {
		out.Climb.NoStreaksAboveRank = b.Climb.NoStreaksAboveRank
	}
	if b.Climb.RankFloors != nil {
		out.Climb.RankFloors = append([]int{}, b.Climb.RankFloors...)
	}
	if b.Climb.StreakWins != nil {
		out.Climb.StreakWins = b.Climb.StreakWins
	}
	if b.Climb.MaxGames != nil {
		out.Climb.MaxGames = b.Climb.MaxGames
	}

	// simulate
	if b.Simulate.Runs != nil {
		out.Simulate.Runs = b.Simulate.Runs
	}
	if b.Simulate.Seed != nil {
		out.Simulate.Seed = b.Simulate.Seed
	}

	return out
}
