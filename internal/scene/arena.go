package scene

import (
	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/core"
)

// Instance is one live occurrence of a category.
type Instance struct {
	ID       core.InstanceID
	Material core.Material
	// Animation is nil for static instances.
	Animation anim.Oscillation
}

// Arena stores live instances keyed by category. A category's instances are
// only ever replaced as a whole.
type Arena struct {
	live [core.NumCategories][]Instance
	gen  [core.NumCategories]uint64
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Count returns the number of live instances of cat.
func (a *Arena) Count(cat core.Category) int {
	if cat < 0 || cat >= core.NumCategories {
		return 0
	}
	return len(a.live[cat])
}

// Live returns a copy of the instances of cat.
func (a *Arena) Live(cat core.Category) []Instance {
	if cat < 0 || cat >= core.NumCategories {
		return nil
	}
	return append([]Instance(nil), a.live[cat]...)
}

// All returns every live instance in stage order.
func (a *Arena) All() []Instance {
	var out []Instance
	for c := range a.live {
		out = append(out, a.live[c]...)
	}
	return out
}

// Generation returns the generation of the current instances of cat.
func (a *Arena) Generation(cat core.Category) uint64 {
	if cat < 0 || cat >= core.NumCategories {
		return 0
	}
	return a.gen[cat]
}

func (a *Arena) destroy(cat core.Category) int {
	n := len(a.live[cat])
	a.live[cat] = nil
	return n
}

func (a *Arena) replace(cat core.Category, inst []Instance) {
	a.live[cat] = inst
}

func (a *Arena) nextID(cat core.Category) func(i int) core.InstanceID {
	a.gen[cat]++
	g := a.gen[cat]
	return func(i int) core.InstanceID {
		return core.InstanceID{Category: cat, Generation: g, Index: i}
	}
}
