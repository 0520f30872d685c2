package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/layers"
	"github.com/louis-kldzj/game-tools/internal/scene"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

func newEngine(t *testing.T, o config.Options, opts ...Option) *Engine {
	t.Helper()
	e, err := New(o, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := e.Sync(1920, 1080); err != nil {
		t.Fatalf("sync: %v", err)
	}
	e.Startup()
	e.Tick(0)
	return e
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	o := config.Default()
	o.Density = 0
	if _, err := New(o); !errors.Is(err, config.ErrInvalidDensity) {
		t.Fatalf("expected ErrInvalidDensity, got %v", err)
	}
}

func TestStartupPopulatesEnabledCategories(t *testing.T) {
	e := newEngine(t, config.Default(), WithSeed(7))
	for _, c := range []core.Category{core.Background, core.Nebula, core.StarStuff, core.Overlay} {
		if n := e.Count(c); n != 1 {
			t.Fatalf("%s: %d instances, want 1", c, n)
		}
	}
	if n := e.Count(core.Planets); n < 1 || n > 4 {
		t.Fatalf("planets %d outside [1, 4]", n)
	}
	if n := e.Count(core.Stars); n < 10 || n > 99 {
		t.Fatalf("stars %d outside [10, 99]", n)
	}
}

func TestDisablingNebulaeEmptiesCategory(t *testing.T) {
	e := newEngine(t, config.Default())
	if e.Count(core.Nebula) != 1 {
		t.Fatalf("expected one nebula before toggle")
	}
	if err := e.Apply(config.Toggle(config.FieldNebulae)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	e.Tick(1.0 / 60)
	if n := e.Count(core.Nebula); n != 0 {
		t.Fatalf("nebula instances %d, want 0", n)
	}
}

func TestEnablingPlanetsUsesSampledCount(t *testing.T) {
	o := config.Default()
	o.Planets = false
	// Every pool draw resolves IntN(n) to 2: planets 1+2, stars 10+2.
	src := &rng.Sequence{Ints: []int{2}, Floats: []float64{0.2, 0.4, 0.6, 0.8, 0.5}}
	e := newEngine(t, o, WithRNG(rng.FromSource(src)))
	if e.Count(core.Planets) != 0 {
		t.Fatalf("planets live while disabled")
	}
	e.Apply(config.Toggle(config.FieldPlanets))
	e.Tick(1.0 / 60)
	frame := e.Snapshot()
	var planets int
	for _, inst := range frame.Instances {
		p, ok := inst.Material.(*layers.PlanetMaterial)
		if !ok {
			continue
		}
		planets++
		if !frame.Geometry.Contains(p.Position) {
			t.Fatalf("planet outside content square: %+v", p.Position)
		}
	}
	if planets != 3 {
		t.Fatalf("planets %d, want 3", planets)
	}
}

func TestManyMutationsCoalesceIntoOneRebuild(t *testing.T) {
	e := newEngine(t, config.Default())
	for i := 0; i < 5; i++ {
		e.Apply(config.Refresh())
	}
	rep := e.Tick(0)
	if rep.Destroyed[core.Nebula] != 1 || rep.Created[core.Nebula] != 1 {
		t.Fatalf("nebula destroyed %d created %d", rep.Destroyed[core.Nebula], rep.Created[core.Nebula])
	}
	if len(rep.Rebuilt) != int(core.NumCategories) {
		t.Fatalf("rebuilt %v", rep.Rebuilt)
	}
}

func TestRejectedMutationDoesNotFanOut(t *testing.T) {
	e := newEngine(t, config.Default())
	rev := e.Revision()
	if err := e.Apply(config.SetDensity(-1)); err == nil {
		t.Fatalf("expected error")
	}
	if rep := e.Tick(0); !rep.Empty() || e.Revision() != rev {
		t.Fatalf("rejected mutation rebuilt %v", rep.Rebuilt)
	}
}

func TestRejectedMutationIsLogged(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	e := newEngine(t, config.Default(), WithLogger(zap.New(obs)))
	e.Apply(config.SetDensity(-1))
	entries := logs.FilterMessage("mutation rejected").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings, want 1", len(entries))
	}
	if _, ok := entries[0].ContextMap()["error"]; !ok {
		t.Fatalf("warning missing error field: %v", entries[0].ContextMap())
	}
}

func TestHandleKeyReportsBinding(t *testing.T) {
	e := newEngine(t, config.Default())
	if !e.HandleKey('n') {
		t.Fatalf("n not bound")
	}
	if e.Options().Nebulae {
		t.Fatalf("n did not toggle nebulae")
	}
	if e.HandleKey('z') {
		t.Fatalf("z reported as bound")
	}
	e.SetFloatParameter("density", config.MaxDensity)
	e.Tick(0)
	if !e.HandleKey('+') {
		t.Fatalf("+ not handled at max density")
	}
	if rep := e.Tick(0); !rep.Empty() {
		t.Fatalf("clamped density rebuilt %v", rep.Rebuilt)
	}
}

func TestAnimationStaysInBounds(t *testing.T) {
	o := config.Default()
	o.Animate = true
	e := newEngine(t, o, WithSeed(3))
	var neb *layers.NebulaMaterial
	for _, inst := range e.Snapshot().Instances {
		if m, ok := inst.Material.(*layers.NebulaMaterial); ok {
			neb = m
		}
	}
	if neb == nil {
		t.Fatalf("no nebula")
	}
	start := neb.Size
	rev := e.Revision()
	for i := 0; i < 2000; i++ {
		e.Tick(0.25)
		if neb.Size < start || neb.Size > start+anim.Range {
			t.Fatalf("tick %d: size %v outside [%v, %v]", i, neb.Size, start, start+anim.Range)
		}
	}
	if neb.Size == start || e.Revision() == rev {
		t.Fatalf("animation did not advance")
	}
}

func TestAnimateOffFreezesValues(t *testing.T) {
	e := newEngine(t, config.Default())
	rev := e.Revision()
	e.Tick(1)
	if e.Revision() != rev {
		t.Fatalf("revision moved without animation or rebuild")
	}
}

func TestSyncUnknownSizeKeepsGeometry(t *testing.T) {
	e := newEngine(t, config.Default())
	if err := e.Sync(0, 0); !errors.Is(err, geometry.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if g := e.Geometry(); g.Width != 1920 || g.Height != 1080 {
		t.Fatalf("geometry changed: %+v", g)
	}
	if rep := e.Tick(0); !rep.Empty() {
		t.Fatalf("unknown size triggered rebuild")
	}
}

func TestResizeRegenerates(t *testing.T) {
	e := newEngine(t, config.Default())
	e.Sync(1280, 720)
	if rep := e.Tick(0); rep.Empty() {
		t.Fatalf("resize did not regenerate")
	}
}

func TestOverlayToggleRemovesPanel(t *testing.T) {
	e := newEngine(t, config.Default())
	e.HandleKey('h')
	e.Tick(0)
	if e.Count(core.Overlay) != 0 {
		t.Fatalf("overlay still live")
	}
	if e.Geometry().Offset() != 0 {
		t.Fatalf("offset %v with overlay hidden", e.Geometry().Offset())
	}
}

func TestSubscribersSeeRebuilds(t *testing.T) {
	e := newEngine(t, config.Default())
	var got []scene.Report
	e.Subscribe(func(r scene.Report) { got = append(got, r) })
	e.Tick(0)
	e.ToggleParameter("palette")
	e.Tick(0)
	if len(got) != 1 {
		t.Fatalf("notifications %d, want 1", len(got))
	}
	if e.Options().Palette == config.Default().Palette {
		t.Fatalf("palette not advanced")
	}
}

func TestSetFloatParameterClampsDensity(t *testing.T) {
	e := newEngine(t, config.Default())
	if !e.SetFloatParameter("density", 1e9) {
		t.Fatalf("density rejected")
	}
	if d := e.Options().Density; d != config.MaxDensity {
		t.Fatalf("density %v, want %v", d, config.MaxDensity)
	}
	if e.SetFloatParameter("seed", 4) {
		t.Fatalf("unknown float parameter accepted")
	}
}

func TestLoadConfig(t *testing.T) {
	e := newEngine(t, config.Default())
	dir := t.TempDir()
	good := filepath.Join(dir, "good.conf")
	os.WriteFile(good, []byte("nebulae=false\npalette=borkfest\n"), 0o644)
	if err := e.LoadConfig(good); err != nil {
		t.Fatalf("load: %v", err)
	}
	e.Tick(0)
	if e.Count(core.Nebula) != 0 || e.Options().Palette.String() != "borkfest" {
		t.Fatalf("config not applied: %+v", e.Options())
	}

	bad := filepath.Join(dir, "bad.conf")
	os.WriteFile(bad, []byte("nebulae=true\nplanets=perhaps\n"), 0o644)
	before := e.Options()
	if err := e.LoadConfig(bad); err == nil {
		t.Fatalf("expected error")
	}
	if e.Options() != before {
		t.Fatalf("partial apply from bad config")
	}
	if rep := e.Tick(0); !rep.Empty() {
		t.Fatalf("bad config triggered rebuild")
	}
}
