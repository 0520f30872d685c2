package core

// Sequence is a Source that replays fixed values in order, wrapping around
// when exhausted. It makes sampled counts and positions predictable.
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 returns the next scripted float, or 0 when none are scripted.
func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	if v < 0 || v >= 1 {
		return 0
	}
	return v
}

// IntN returns the next scripted int reduced into [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 || len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
