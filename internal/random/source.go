package random

import (
	"math/rand/v2"
)

// Source is the randomness consumed by the generators. Implementations must
// be deterministic for a given seed so a galaxy can be regenerated.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

type pcgSource struct {
	rng *rand.Rand
}

// New returns a PCG backed source.
func New(seed uint64) Source {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Derive returns a source for a sub stream, e.g. one galaxy of a run.
func Derive(seed, stream uint64) Source {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, stream*0x9e3779b97f4a7c15+1))}
}

func (s *pcgSource) Float64() float64 { return s.rng.Float64() }

func (s *pcgSource) IntN(n int) int { return s.rng.IntN(n) }

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Range returns a value in [lo, hi). An empty range yields lo.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo)
}

// Uint64Range is Range for resource quantities.
func Uint64Range(src Source, lo, hi uint64) uint64 {
	if hi <= lo {
		return lo
	}
	return lo + uint64(src.IntN(int(hi-lo)))
}

// FloatRange returns a value in [lo, hi).
func FloatRange(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}
