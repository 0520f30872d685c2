package scene

import (
	"go.uber.org/zap"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/core"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

// State is the regeneration state of one category.
type State int

const (
	Idle State = iota
	Pending
	Rebuilding
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Rebuilding:
		return "rebuilding"
	}
	return "idle"
}

// Report summarises one Drain.
type Report struct {
	Rebuilt   []core.Category
	Destroyed [core.NumCategories]int
	Created   [core.NumCategories]int
}

// Empty reports whether nothing was rebuilt.
func (r Report) Empty() bool { return len(r.Rebuilt) == 0 }

// Regenerator collects regeneration requests during a tick and replaces the
// affected categories once per tick.
type Regenerator struct {
	reg   *Registry
	arena *Arena
	osc   *anim.Oscillator
	rand  *rng.RNG
	log   *zap.Logger

	state [core.NumCategories]State
	count [core.NumCategories]int
	// requests counts raw requests per category since the last drain.
	requests [core.NumCategories]int
}

// NewRegenerator wires a regenerator to its collaborators. A nil oscillator
// disables animation registration; a nil rng uses seed 0.
func NewRegenerator(reg *Registry, arena *Arena, osc *anim.Oscillator, r *rng.RNG) *Regenerator {
	if r == nil {
		r = rng.NewRNG(0)
	}
	if arena == nil {
		arena = NewArena()
	}
	return &Regenerator{reg: reg, arena: arena, osc: osc, rand: r, log: zap.NewNop()}
}

// SetLogger replaces the logger used for rebuild traces.
func (g *Regenerator) SetLogger(l *zap.Logger) {
	if l != nil {
		g.log = l
	}
}

// Arena returns the instance store.
func (g *Regenerator) Arena() *Arena { return g.arena }

// Request marks cat for rebuild. count is the pool size to build and is
// ignored by singletons; the last request of a tick wins. Unregistered
// categories are ignored.
func (g *Regenerator) Request(cat core.Category, count int) bool {
	d, ok := g.reg.Lookup(cat)
	if !ok {
		return false
	}
	if d.Cardinality == core.Singleton {
		count = 1
	} else if count < 0 {
		count = 0
	}
	g.state[cat] = Pending
	g.count[cat] = count
	g.requests[cat]++
	return true
}

// RequestAll fans out one request per registered category, sampling each
// pool size once.
func (g *Regenerator) RequestAll() {
	for _, d := range g.reg.Descriptors() {
		g.Request(d.Category, d.SampleCount(g.rand))
	}
}

// State returns the state of cat.
func (g *Regenerator) State(cat core.Category) State {
	if cat < 0 || cat >= core.NumCategories {
		return Idle
	}
	return g.state[cat]
}

// Pending reports whether any category awaits a rebuild.
func (g *Regenerator) Pending() bool {
	for _, s := range g.state {
		if s == Pending {
			return true
		}
	}
	return false
}

// Drain rebuilds every pending category in stage order: the old instances
// and their animation registrations are dropped, then, if the category is
// enabled, the new instances are derived and registered.
func (g *Regenerator) Drain(env Env) Report {
	var rep Report
	for _, d := range g.reg.Descriptors() {
		cat := d.Category
		if g.state[cat] != Pending {
			continue
		}
		g.state[cat] = Rebuilding
		rep.Rebuilt = append(rep.Rebuilt, cat)
		rep.Destroyed[cat] = g.arena.destroy(cat)
		if g.osc != nil {
			g.osc.RemoveCategory(cat)
		}
		if d.Enabled(env.Options) {
			rep.Created[cat] = g.build(d, env, g.count[cat])
		}
		g.log.Debug("regenerate",
			zap.Stringer("category", cat),
			zap.Int("requests", g.requests[cat]),
			zap.Int("destroyed", rep.Destroyed[cat]),
			zap.Int("created", rep.Created[cat]))
		g.requests[cat] = 0
		g.state[cat] = Idle
	}
	return rep
}

func (g *Regenerator) build(d Descriptor, env Env, n int) int {
	id := g.arena.nextID(d.Category)
	out := make([]Instance, 0, n)
	for i := 0; i < n; i++ {
		m := d.Derive(env, g.rand)
		if m == nil {
			continue
		}
		inst := Instance{ID: id(len(out)), Material: m}
		if a, ok := m.(Animatable); ok && g.osc != nil {
			h := a.AnimatedValue()
			speed := d.AnimSpeed
			if speed == 0 {
				speed = anim.DefaultSpeed
			}
			o := anim.Begin(h.Get(), d.AnimDelta, speed)
			inst.Animation = o
			g.osc.Add(inst.ID, h, o)
		}
		out = append(out, inst)
	}
	g.arena.replace(d.Category, out)
	return len(out)
}
