package ladder

// Legend is the sentinel rank. It marks the terminal key of a StarMap.
const Legend = 0

// BandRule selects at which ranks the stars-per-rank width grows.
type BandRule string

const (
	// RuleModulo grows the width at every rank divisible by 5, except the
	// top rank and rank 5.
	RuleModulo BandRule = "modulo"
	// RuleLegacy grows the width at ranks 20, 15 and 10 only.
	RuleLegacy BandRule = "legacy"
)

const (
	DefaultTopRank   = 25
	DefaultBaseWidth = 2
)

// Options describes the ladder shape.
type Options struct {
	TopRank   int      // entry rank, e.g. 25
	BaseWidth int      // stars per rank in the top band
	Rule      BandRule // where the width grows; "" => RuleModulo
}

// DefaultOptions returns the standard 25-rank ladder.
func DefaultOptions() Options {
	return Options{TopRank: DefaultTopRank, BaseWidth: DefaultBaseWidth, Rule: RuleModulo}
}

// normalize fills zero or invalid fields with defaults.
func (o Options) normalize() Options {
	if o.TopRank < 1 {
		o.TopRank = DefaultTopRank
	}
	if o.BaseWidth < 1 {
		o.BaseWidth = DefaultBaseWidth
	}
	if o.Rule != RuleLegacy {
		o.Rule = RuleModulo
	}
	return o
}

// grows reports whether the width increases before laying down rank.
func (o Options) grows(rank int) bool {
	switch o.Rule {
	case RuleLegacy:
		return rank == 20 || rank == 15 || rank == 10
	default:
		return rank%5 == 0 && rank != o.TopRank && rank != 5
	}
}

// Entry is one key of the star map.
type Entry struct {
	Stars int // total stars accumulated
	Rank  int // rank held with that many stars; Legend for the last entry
}

// StarMap translates a total star count into a rank.
// Keys are contiguous from 0, so entries[i].Stars == i.
type StarMap struct {
	entries []Entry
	first   map[int]int // rank -> lowest key
	widths  map[int]int // rank -> stars per rank
	top     int
}

// Build lays out the ladder. Key 0 is the zero-star base of the top rank;
// each rank from the top down then receives width new keys, and one final
// key maps to Legend.
func Build(opts Options) *StarMap {
	opts = opts.normalize()

	m := &StarMap{
		first:  make(map[int]int, opts.TopRank+1),
		widths: make(map[int]int, opts.TopRank),
		top:    opts.TopRank,
	}
	m.add(opts.TopRank)

	width := opts.BaseWidth
	for rank := opts.TopRank; rank >= 1; rank-- {
		if opts.grows(rank) {
			width++
		}
		m.widths[rank] = width
		for i := 0; i < width; i++ {
			m.add(rank)
		}
	}
	m.add(Legend)
	return m
}

// BuildStarMap builds the standard ladder.
func BuildStarMap() *StarMap {
	return Build(DefaultOptions())
}

func (m *StarMap) add(rank int) {
	key := len(m.entries)
	m.entries = append(m.entries, Entry{Stars: key, Rank: rank})
	if _, ok := m.first[rank]; !ok {
		m.first[rank] = key
	}
}

// Len returns the number of keys, including the Legend key.
func (m *StarMap) Len() int { return len(m.entries) }

// Entries returns a copy of the ordered entries.
func (m *StarMap) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// RankAt returns the rank held with the given star count.
func (m *StarMap) RankAt(stars int) (int, bool) {
	if stars < 0 || stars >= len(m.entries) {
		return 0, false
	}
	return m.entries[stars].Rank, true
}

// MinStars returns the lowest key that maps to rank.
func (m *StarMap) MinStars(rank int) (int, bool) {
	k, ok := m.first[rank]
	return k, ok
}

// Legend returns the terminal key.
func (m *StarMap) Legend() int {
	return m.entries[len(m.entries)-1].Stars
}

// TopRank returns the entry rank.
func (m *StarMap) TopRank() int { return m.top }

// BandWidth returns the stars per rank laid down for rank, or 0 if the rank
// is not on the ladder. The base key 0 is not counted.
func (m *StarMap) BandWidth(rank int) int {
	return m.widths[rank]
}

// Ranks lists the competitive ranks from the top rank down to 1.
func (m *StarMap) Ranks() []int {
	out := make([]int, 0, m.top)
	for r := m.top; r >= 1; r-- {
		out = append(out, r)
	}
	return out
}
