package core

import "math/rand/v2"

// Source is the minimal random stream the generators draw from. *rand.Rand
// satisfies it; tests substitute scripted sources.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin convenience wrapper around a Source for deterministic seeding.
type RNG struct {
	r Source
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FromSource wraps an arbitrary Source. A nil source falls back to seed 0.
func FromSource(src Source) *RNG {
	if src == nil {
		return NewRNG(0)
	}
	return &RNG{r: src}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns a float in [lo, hi). Empty or inverted ranges return lo.
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// IntRange returns an int in [lo, hi). Empty or inverted ranges return lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// IntInclusive returns an int in [lo, hi].
func (r *RNG) IntInclusive(lo, hi int) int {
	return r.IntRange(lo, hi+1)
}

// Int63 returns a non-negative 63 bit value, used to seed noise generators.
func (r *RNG) Int63() int64 {
	return int64(r.r.Float64() * (1 << 62))
}
