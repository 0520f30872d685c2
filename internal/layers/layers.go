package layers

import (
	"image"
	"log"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/palette"
	"github.com/louis-kldzj/game-tools/internal/scene"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

const (
	// StarFrames is the number of star sprite shapes.
	StarFrames = 6

	PlanetDepth = 2.0
	StarDepth   = 1.5

	nebulaSeedMin, nebulaSeedMax = 1.0, 50.0
	dustSeedMin, dustSeedMax     = 1.0, 10.0
	planetSeedMin, planetSeedMax = 1.0, 10.0

	dustSize    = 5.0
	dustOctaves = 3
	dustPixels  = 2000.0

	planetSize    = 5.365
	planetOctaves = 3
	planetPixels  = 100.0

	planetRadiusMin, planetRadiusMax = 40.0, 70.0
	starScaleMin, starScaleMax       = 1.0, 2.0
)

// Default returns the registry of all six categories.
func Default() *scene.Registry {
	reg, err := scene.NewRegistry(Descriptors()...)
	if err != nil {
		log.Fatalf("layers: %v", err)
	}
	return reg
}

// Descriptors lists the category declarations in stage order.
func Descriptors() []scene.Descriptor {
	return []scene.Descriptor{
		{
			Category:    core.Background,
			Cardinality: core.Singleton,
			Derive:      DeriveBackground,
		},
		{
			Category:    core.Nebula,
			Cardinality: core.Singleton,
			Enabled:     func(o config.Options) bool { return o.Nebulae },
			Derive:      DeriveNebula,
			AnimDelta:   anim.Range,
			AnimSpeed:   0.05,
		},
		{
			Category:    core.StarStuff,
			Cardinality: core.Singleton,
			Enabled:     func(o config.Options) bool { return o.Dust },
			Derive:      DeriveStarStuff,
			AnimDelta:   anim.Range,
			AnimSpeed:   0.05,
		},
		{
			Category:    core.Planets,
			Cardinality: core.Pool,
			Enabled:     func(o config.Options) bool { return o.Planets },
			Derive:      DerivePlanet,
			MinCount:    1,
			MaxCount:    4,
			AnimDelta:   anim.Range,
			AnimSpeed:   anim.DefaultSpeed,
		},
		{
			Category:    core.Stars,
			Cardinality: core.Pool,
			Enabled:     func(o config.Options) bool { return o.Stars },
			Derive:      DeriveStar,
			MinCount:    10,
			MaxCount:    99,
		},
		{
			Category:    core.Overlay,
			Cardinality: core.Singleton,
			Enabled:     func(o config.Options) bool { return o.Overlay },
			Derive:      DeriveOverlay,
		},
	}
}

// DeriveBackground paints the reserved first palette stop, fully transparent
// when transparency is on.
func DeriveBackground(env scene.Env, _ *rng.RNG) core.Material {
	c := env.Options.Palette.Background()
	if env.Options.Transparency {
		c.A = 0
	}
	return &BackgroundMaterial{Color: c, Palette: env.Options.Palette}
}

func noise(env scene.Env, size float64, octaves int, seed, pixels float64) Noise {
	return Noise{
		Size:       size,
		Octaves:    octaves,
		Seed:       seed,
		Pixels:     pixels,
		Tile:       env.Options.Tile,
		Darken:     env.Options.Darken,
		OffsetX:    env.Geometry.Offset(),
		Palette:    env.Options.Palette,
		Texture:    texture(env),
		Background: env.Options.Palette.Background(),
	}
}

func texture(env scene.Env) *image.NRGBA {
	if env.Palettes == nil {
		return palette.Texture(env.Options.Palette.VisibleStops(), palette.DefaultTextureWidth)
	}
	return env.Palettes.Texture(env.Options.Palette, palette.DefaultTextureWidth)
}

// nebulaSize ties the noise scale to viewport height over density. Before the
// viewport is known the density alone is used.
func nebulaSize(env scene.Env) float64 {
	h := env.Geometry.Height
	if h <= 0 {
		h = env.Options.Density
	}
	return h / env.Options.Density
}

// DeriveNebula samples 3 or 4 octaves and a seed in [1, 50).
func DeriveNebula(env scene.Env, r *rng.RNG) core.Material {
	n := noise(env, nebulaSize(env), r.IntRange(3, 5), r.Range(nebulaSeedMin, nebulaSeedMax), env.Options.Density)
	return &NebulaMaterial{Noise: n}
}

// DeriveStarStuff uses a fixed scale and a seed in [1, 10).
func DeriveStarStuff(env scene.Env, r *rng.RNG) core.Material {
	n := noise(env, dustSize, dustOctaves, r.Range(dustSeedMin, dustSeedMax), dustPixels)
	return &StarStuffMaterial{Noise: n}
}

// DerivePlanet places one planet inside the content square.
func DerivePlanet(env scene.Env, r *rng.RNG) core.Material {
	n := noise(env, planetSize, planetOctaves, r.Range(planetSeedMin, planetSeedMax), planetPixels)
	return &PlanetMaterial{
		Noise:       n,
		Position:    env.Geometry.RandomPosition(PlanetDepth, r),
		Radius:      r.Range(planetRadiusMin, planetRadiusMax),
		LightOrigin: [2]float64{r.Float64(), r.Float64()},
	}
}

// DeriveStar places one star inside the content square with a random size,
// shape and palette tint.
func DeriveStar(env scene.Env, r *rng.RNG) core.Material {
	pos := env.Geometry.RandomPosition(StarDepth, r)
	scale := r.Range(starScaleMin, starScaleMax)
	frame := r.IntRange(0, StarFrames)
	colors := env.Options.Palette.Colors()
	tint := colors[len(colors)-1]
	if len(colors) > 2 {
		tint = colors[r.IntRange(len(colors)/2, len(colors))]
	}
	return &StarMaterial{Position: pos, Scale: scale, Frame: frame, Tint: tint}
}

// DeriveOverlay covers the side strip right of the content square.
func DeriveOverlay(env scene.Env, _ *rng.RNG) core.Material {
	g := env.Geometry
	return &OverlayMaterial{
		Left:   g.PanelLeft(),
		Width:  g.PanelWidth(),
		Height: g.Height,
		Params: env.Options.Parameters(),
	}
}
