package render

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

const (
	persistence = 0.5
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// noiseBank caches generators by seed; seeds change only on rebuild.
type noiseBank struct {
	simplex map[int64]opensimplex.Noise
	perlin  map[int64]*perlin.Perlin
}

func newNoiseBank() *noiseBank {
	return &noiseBank{
		simplex: make(map[int64]opensimplex.Noise),
		perlin:  make(map[int64]*perlin.Perlin),
	}
}

func seedKey(seed float64) int64 {
	return int64(math.Round(seed * 1000))
}

func (b *noiseBank) simplexFor(seed float64) opensimplex.Noise {
	k := seedKey(seed)
	n, ok := b.simplex[k]
	if !ok {
		n = opensimplex.New(k)
		b.simplex[k] = n
	}
	return n
}

func (b *noiseBank) perlinFor(seed float64) *perlin.Perlin {
	k := seedKey(seed)
	p, ok := b.perlin[k]
	if !ok {
		p = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, k)
		b.perlin[k] = p
	}
	return p
}

// fbm sums octaves of simplex noise and maps the result to [0, 1].
func (b *noiseBank) fbm(seed, x, y float64, octaves int) float64 {
	n := b.simplexFor(seed)
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	if octaves < 1 {
		octaves = 1
	}
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*frequency+seed, y*frequency+seed) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return clamp01(total/maxValue*0.5 + 0.5)
}

// dust returns perlin noise mapped to [0, 1].
func (b *noiseBank) dust(seed, x, y float64) float64 {
	return clamp01(b.perlinFor(seed).Noise2D(x, y)*0.5 + 0.5)
}

// Len reports how many generators are cached.
func (b *noiseBank) Len() int { return len(b.simplex) + len(b.perlin) }

func (b *noiseBank) reset() {
	clear(b.simplex)
	clear(b.perlin)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
