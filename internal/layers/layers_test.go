package layers

import (
	"testing"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/palette"
	"github.com/louis-kldzj/game-tools/internal/scene"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

func env(o config.Options) scene.Env {
	return scene.Env{Options: o, Geometry: geometry.New(1920, 1080, o.Overlay), Palettes: palette.NewCache()}
}

func TestDefaultRegistersAllCategories(t *testing.T) {
	reg := Default()
	cats := reg.Categories()
	if len(cats) != int(core.NumCategories) {
		t.Fatalf("registered %d categories, want %d", len(cats), core.NumCategories)
	}
	for _, c := range core.Categories() {
		d, ok := reg.Lookup(c)
		if !ok {
			t.Fatalf("missing %s", c)
		}
		pool := c == core.Planets || c == core.Stars
		if pool != (d.Cardinality == core.Pool) {
			t.Fatalf("%s cardinality %s", c, d.Cardinality)
		}
	}
}

func TestBackgroundTransparency(t *testing.T) {
	o := config.Default()
	m := DeriveBackground(env(o), nil).(*BackgroundMaterial)
	if m.Color.A != 255 || m.Color != o.Palette.Background() {
		t.Fatalf("opaque background %+v", m.Color)
	}
	o.Transparency = true
	m = DeriveBackground(env(o), nil).(*BackgroundMaterial)
	if m.Color.A != 0 {
		t.Fatalf("expected transparent background, alpha %d", m.Color.A)
	}
}

func TestNebulaRanges(t *testing.T) {
	o := config.Default()
	e := env(o)
	r := rng.NewRNG(42)
	for i := 0; i < 200; i++ {
		m := DeriveNebula(e, r).(*NebulaMaterial)
		if m.Octaves < 3 || m.Octaves > 4 {
			t.Fatalf("octaves %d outside [3, 4]", m.Octaves)
		}
		if m.Seed < 1 || m.Seed >= 50 {
			t.Fatalf("seed %v outside [1, 50)", m.Seed)
		}
		if m.Size != 1080/o.Density {
			t.Fatalf("size %v, want %v", m.Size, 1080/o.Density)
		}
		if m.OffsetX != -420 || m.Texture == nil {
			t.Fatalf("offset %v texture %v", m.OffsetX, m.Texture)
		}
	}
}

func TestFlagsCopiedVerbatim(t *testing.T) {
	o := config.Default()
	o.Tile = true
	o.Darken = true
	m := DeriveStarStuff(env(o), rng.NewRNG(3)).(*StarStuffMaterial)
	if !m.Tile || !m.Darken || m.Pixels != dustPixels {
		t.Fatalf("unexpected star-stuff %+v", m.Noise)
	}
}

func TestPlanetsFromScriptedCount(t *testing.T) {
	o := config.Default()
	e := env(o)
	// IntN(4) = 2 gives IntInclusive(1, 4) = 3.
	src := &rng.Sequence{Ints: []int{2}, Floats: []float64{0.1, 0.5, 0.9, 0.3}}
	reg := Default()
	osc := anim.New()
	g := scene.NewRegenerator(reg, nil, osc, rng.FromSource(src))
	d, _ := reg.Lookup(core.Planets)
	g.Request(core.Planets, d.SampleCount(rng.FromSource(src)))
	g.Drain(e)
	live := g.Arena().Live(core.Planets)
	if len(live) != 3 {
		t.Fatalf("planets %d, want 3", len(live))
	}
	for _, inst := range live {
		p := inst.Material.(*PlanetMaterial)
		if !e.Geometry.Contains(p.Position) {
			t.Fatalf("planet at %+v outside content square", p.Position)
		}
		if p.Position.Z != PlanetDepth {
			t.Fatalf("planet depth %v", p.Position.Z)
		}
		if p.Radius < planetRadiusMin || p.Radius >= planetRadiusMax {
			t.Fatalf("radius %v", p.Radius)
		}
	}
	if osc.Len() != 3 {
		t.Fatalf("animated planets %d, want 3", osc.Len())
	}
}

func TestStarRanges(t *testing.T) {
	e := env(config.Default())
	r := rng.NewRNG(9)
	for i := 0; i < 500; i++ {
		s := DeriveStar(e, r).(*StarMaterial)
		if s.Frame < 0 || s.Frame >= StarFrames {
			t.Fatalf("frame %d", s.Frame)
		}
		if s.Scale < starScaleMin || s.Scale >= starScaleMax {
			t.Fatalf("scale %v", s.Scale)
		}
		if !e.Geometry.Contains(s.Position) {
			t.Fatalf("star outside square: %+v", s.Position)
		}
	}
	d, _ := Default().Lookup(core.Stars)
	for i := 0; i < 500; i++ {
		if n := d.SampleCount(r); n < 10 || n > 99 {
			t.Fatalf("star count %d outside [10, 99]", n)
		}
	}
}

func TestDegenerateGeometryPlacesAtOrigin(t *testing.T) {
	e := scene.Env{Options: config.Default()}
	p := DerivePlanet(e, rng.NewRNG(1)).(*PlanetMaterial)
	if p.Position != (geometry.Vec3{}) {
		t.Fatalf("expected zero position, got %+v", p.Position)
	}
	n := DeriveNebula(e, rng.NewRNG(1)).(*NebulaMaterial)
	if n.Size != 1 {
		t.Fatalf("size without viewport %v, want 1", n.Size)
	}
}

func TestOverlayCoversPanel(t *testing.T) {
	o := config.Default()
	m := DeriveOverlay(env(o), nil).(*OverlayMaterial)
	if m.Left != 1080 || m.Width != 840 {
		t.Fatalf("overlay at %v width %v", m.Left, m.Width)
	}
	if _, ok := m.Params.Lookup("planets"); !ok {
		t.Fatalf("overlay missing planets toggle")
	}
}
