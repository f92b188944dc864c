package climb

import (
	"errors"
	"fmt"

	"github.com/xtding233/legend-sim/internal/ladder"
)

const (
	DefaultNoStreaksAboveRank = 5
	DefaultStreakWins         = 3
	// DefaultMaxGames bounds a climb that cannot converge, e.g. winRate 0.
	DefaultMaxGames = 5000
)

// DefaultRankFloors are the ranks a player cannot fall below once reached.
var DefaultRankFloors = []int{25, 20, 15, 10, 5}

var ErrUnknownRank = errors.New("rank not on ladder")

// Params describes one climb. Zero values fall back to the defaults;
// a nil RankFloors means DefaultRankFloors, an empty one means no floors.
type Params struct {
	Ladder             ladder.Options
	StartStars         int
	NoStreaksAboveRank int   // streak bonus stops at this rank
	RankFloors         []int // protected ranks
	StreakWins         int   // consecutive wins before the bonus star
	MaxGames           int   // safety cap per climb
}

// DefaultParams returns the standard ladder settings.
func DefaultParams() Params {
	return Params{
		Ladder:             ladder.DefaultOptions(),
		NoStreaksAboveRank: DefaultNoStreaksAboveRank,
		RankFloors:         append([]int(nil), DefaultRankFloors...),
		StreakWins:         DefaultStreakWins,
		MaxGames:           DefaultMaxGames,
	}
}

// Rules are Params resolved against a star map.
type Rules struct {
	Legend       int          // terminal key
	Floors       map[int]bool // protected star counts
	StreakCutoff int          // bonus applies strictly below this star count
	StreakWins   int
	MaxGames     int
}

// NewRules resolves floor and streak ranks to the lowest key of their band.
func NewRules(m *ladder.StarMap, p Params) (Rules, error) {
	noStreaks := p.NoStreaksAboveRank
	if noStreaks == 0 {
		noStreaks = DefaultNoStreaksAboveRank
	}
	floors := p.RankFloors
	if floors == nil {
		floors = DefaultRankFloors
	}
	streakWins := p.StreakWins
	if streakWins <= 0 {
		streakWins = DefaultStreakWins
	}
	maxGames := p.MaxGames
	if maxGames <= 0 {
		maxGames = DefaultMaxGames
	}

	r := Rules{
		Legend:     m.Legend(),
		Floors:     make(map[int]bool, len(floors)),
		StreakWins: streakWins,
		MaxGames:   maxGames,
	}
	for _, rank := range floors {
		k, ok := m.MinStars(rank)
		if !ok || rank == ladder.Legend {
			return Rules{}, fmt.Errorf("rank floor %d: %w", rank, ErrUnknownRank)
		}
		r.Floors[k] = true
	}
	k, ok := m.MinStars(noStreaks)
	if !ok {
		return Rules{}, fmt.Errorf("no streaks above rank %d: %w", noStreaks, ErrUnknownRank)
	}
	r.StreakCutoff = k
	return r, nil
}

// Climber is the state of one climb.
type Climber struct {
	rules  Rules
	Stars  int
	Streak int
	Games  int
}

func NewClimber(r Rules, startStars int) *Climber {
	return &Climber{rules: r, Stars: startStars}
}

// Done reports whether the climb reached Legend or hit the game cap.
func (c *Climber) Done() bool {
	return c.Stars >= c.rules.Legend || c.Games >= c.rules.MaxGames
}

// Reached reports whether the climber is at Legend.
func (c *Climber) Reached() bool {
	return c.Stars >= c.rules.Legend
}

// Record applies one game result.
// A loss keeps stars only when they sit exactly on a floor; floors are not
// a clamp for counts already below them.
func (c *Climber) Record(win bool) {
	c.Games++
	if win {
		c.Streak++
		if c.Streak >= c.rules.StreakWins && c.Stars < c.rules.StreakCutoff {
			c.Stars += 2
		} else {
			c.Stars++
		}
		return
	}
	c.Streak = 0
	if !c.rules.Floors[c.Stars] {
		c.Stars--
	}
}

// Play draws and records one game, returning whether it was won.
func (c *Climber) Play(winRate float64, rng RandomSource) bool {
	win := PlayGame(winRate, rng)
	c.Record(win)
	return win
}

// ClimbToLegend simulates games until Legend or the cap and returns the
// number of games played.
func ClimbToLegend(winRate float64, p Params, rng RandomSource) (int, error) {
	c, err := climbOnce(winRate, p, rng)
	if err != nil {
		return 0, err
	}
	return c.Games, nil
}

// climbOnce runs one climb on a freshly built ladder.
func climbOnce(winRate float64, p Params, rng RandomSource) (*Climber, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	rules, err := NewRules(ladder.Build(p.Ladder), p)
	if err != nil {
		return nil, err
	}
	c := NewClimber(rules, p.StartStars)
	for !c.Done() {
		c.Play(winRate, rng)
	}
	return c, nil
}
