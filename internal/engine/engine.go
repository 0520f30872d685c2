// Package engine runs the scenery: it owns the configuration state, turns
// every mutation into a fan-out of regeneration requests and advances the
// regeneration and animation stages once per tick.
//
// Hosts call, per frame and in this order: Sync, Apply (for each input),
// Tick. Startup must be called once before the first Tick.
package engine

import (
	"go.uber.org/zap"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/layers"
	"github.com/louis-kldzj/game-tools/internal/palette"
	"github.com/louis-kldzj/game-tools/internal/scene"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

// Option customises an Engine.
type Option func(*Engine)

// WithLogger routes rebuild traces and recoverable errors to l.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRNG replaces the random source used by derivation and pool sizes.
func WithRNG(r *rng.RNG) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithSeed seeds the random source.
func WithSeed(seed int64) Option {
	return WithRNG(rng.NewRNG(seed))
}

// WithRegistry replaces the default category registry.
func WithRegistry(reg *scene.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// Frame is a read-only view of the scenery after a tick.
type Frame struct {
	Revision  uint64
	Options   config.Options
	Geometry  geometry.Geometry
	Instances []scene.Instance
}

// Engine is the single owner of configuration state and live scenery.
type Engine struct {
	state    *config.State
	reg      *scene.Registry
	regen    *scene.Regenerator
	osc      *anim.Oscillator
	palettes *palette.Cache
	rand     *rng.RNG
	log      *zap.Logger

	started   bool
	revision  uint64
	listeners []func(scene.Report)
}

// New validates o and builds an engine with the default layers.
func New(o config.Options, opts ...Option) (*Engine, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		state:    config.NewState(o),
		osc:      anim.New(),
		palettes: palette.NewCache(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.reg == nil {
		e.reg = layers.Default()
	}
	if e.rand == nil {
		e.rand = rng.NewRNG(0)
	}
	e.regen = scene.NewRegenerator(e.reg, scene.NewArena(), e.osc, e.rand)
	e.regen.SetLogger(e.log)
	return e, nil
}

// Startup requests every category once. Later calls are no-ops.
func (e *Engine) Startup() {
	if e.started {
		return
	}
	e.started = true
	e.regen.RequestAll()
}

// Apply mutates the configuration state and, when anything changed, fans out
// one regeneration request per category. Rejected mutations change nothing.
func (e *Engine) Apply(m config.Mutation) error {
	changed, err := e.state.Apply(m)
	if err != nil {
		e.log.Warn("mutation rejected", zap.Stringer("mutation", m), zap.Error(err))
		return err
	}
	if changed {
		e.regen.RequestAll()
	}
	return nil
}

// Sync records the viewport size. A new size regenerates everything so the
// layout follows the window; an unknown size keeps the previous geometry.
func (e *Engine) Sync(width, height float64) error {
	prev := e.state.Viewport
	if err := e.state.Sync(width, height); err != nil {
		return err
	}
	if prev.Width != width || prev.Height != height {
		e.regen.RequestAll()
	}
	return nil
}

// Tick drains pending rebuilds and then advances animation by dt seconds.
func (e *Engine) Tick(dt float64) scene.Report {
	rep := e.regen.Drain(e.env())
	animated := e.osc.Tick(dt, e.state.Options.Animate)
	if !rep.Empty() || animated > 0 {
		e.revision++
	}
	if !rep.Empty() {
		for _, fn := range e.listeners {
			fn(rep)
		}
	}
	return rep
}

func (e *Engine) env() scene.Env {
	return scene.Env{Options: e.state.Options, Geometry: e.state.Viewport, Palettes: e.palettes}
}

// Subscribe registers fn to run after every tick that rebuilt something.
func (e *Engine) Subscribe(fn func(scene.Report)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Options returns the current configuration.
func (e *Engine) Options() config.Options { return e.state.Options }

// Geometry returns the current viewport geometry.
func (e *Engine) Geometry() geometry.Geometry { return e.state.Viewport }

// Revision increases whenever the scenery visibly changes.
func (e *Engine) Revision() uint64 { return e.revision }

// Count returns the number of live instances of cat.
func (e *Engine) Count(cat core.Category) int { return e.regen.Arena().Count(cat) }

// Palettes returns the shared gradient texture cache.
func (e *Engine) Palettes() *palette.Cache { return e.palettes }

// Snapshot returns the live scenery. Materials are shared with the engine
// and must not be modified.
func (e *Engine) Snapshot() Frame {
	return Frame{
		Revision:  e.revision,
		Options:   e.state.Options,
		Geometry:  e.state.Viewport,
		Instances: e.regen.Arena().All(),
	}
}

// LoadConfig replaces the options with the contents of path. On failure the
// error is logged and the current options stay in place.
func (e *Engine) LoadConfig(path string) error {
	o, err := config.Load(path, e.state.Options)
	if err != nil {
		e.log.Warn("config load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	return e.Apply(config.Replace(o))
}

// SaveConfig writes the current options to path.
func (e *Engine) SaveConfig(path string) error {
	return config.Save(path, e.state.Options)
}
