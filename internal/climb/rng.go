package climb

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields the uniform draw that decides one game: a draw below
// the win rate is a win. Draws must lie in [0, 1).
type RandomSource interface {
	Float64() float64
}

// entropyRNG decides games from OS entropy; batches are not repeatable.
type entropyRNG struct{}

func (entropyRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// 53 bits fill a float64 mantissa exactly
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// DefaultRNG is used when a climb or batch is given no source.
func DefaultRNG() RandomSource { return entropyRNG{} }

// batchRNG is one PCG stream shared by every game of every climb in a batch.
type batchRNG struct{ pcg *rand.Rand }

// NewSeededRNG returns a source whose draws depend only on seed. Passing it
// to RunMonteCarlo makes the whole batch, sample by sample, reproducible;
// climbs consume the stream in order, so changing the run count changes only
// the tail of the samples.
func NewSeededRNG(seed uint64) RandomSource {
	return &batchRNG{pcg: rand.New(rand.NewPCG(seed, 0))}
}

func (b *batchRNG) Float64() float64 { return b.pcg.Float64() }
