// Package scene owns the live scenery: the category registry, the arena of
// generated instances and the per-category regeneration state machine.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/palette"
	rng "github.com/louis-kldzj/game-tools/pkg/core"
)

// Env is everything a derivation function may read.
type Env struct {
	Options  config.Options
	Geometry geometry.Geometry
	Palettes *palette.Cache
}

// Animatable is implemented by materials with an oscillating parameter.
type Animatable interface {
	core.Material
	AnimatedValue() anim.ValueHolder
}

// DeriveFunc builds the parameters of one new instance.
type DeriveFunc func(env Env, r *rng.RNG) core.Material

// Descriptor declares one category.
type Descriptor struct {
	Category    core.Category
	Cardinality core.Cardinality
	Enabled     func(config.Options) bool
	Derive      DeriveFunc

	// MinCount and MaxCount bound the sampled size of a pool, inclusive.
	MinCount int
	MaxCount int

	// AnimDelta and AnimSpeed configure the oscillation of animatable
	// materials. A zero speed falls back to anim.DefaultSpeed.
	AnimDelta float64
	AnimSpeed float64
}

// SampleCount draws the instance count for one fan-out.
func (d Descriptor) SampleCount(r *rng.RNG) int {
	if d.Cardinality == core.Singleton {
		return 1
	}
	return r.IntInclusive(d.MinCount, d.MaxCount)
}

func (d Descriptor) validate() error {
	switch {
	case d.Category < 0 || d.Category >= core.NumCategories:
		return fmt.Errorf("scene: category %d out of range", int(d.Category))
	case d.Derive == nil:
		return fmt.Errorf("scene: %s has no derive function", d.Category)
	case d.Cardinality == core.Pool && (d.MinCount < 0 || d.MaxCount < d.MinCount):
		return fmt.Errorf("scene: %s pool bounds [%d, %d] invalid", d.Category, d.MinCount, d.MaxCount)
	}
	return nil
}

// ErrDuplicate reports two descriptors for the same category.
var ErrDuplicate = errors.New("scene: duplicate category")

// Registry is the fixed, ordered set of categories.
type Registry struct {
	byCat [core.NumCategories]*Descriptor
	order []core.Category
}

// NewRegistry validates the descriptors and orders them by stage.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{}
	for i := range descs {
		d := descs[i]
		if err := d.validate(); err != nil {
			return nil, err
		}
		if r.byCat[d.Category] != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, d.Category)
		}
		if d.Enabled == nil {
			d.Enabled = func(config.Options) bool { return true }
		}
		r.byCat[d.Category] = &d
		r.order = append(r.order, d.Category)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r, nil
}

// Categories returns the registered categories in stage order.
func (r *Registry) Categories() []core.Category {
	return append([]core.Category(nil), r.order...)
}

// Descriptors returns the registered descriptors in stage order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, *r.byCat[c])
	}
	return out
}

// Lookup returns the descriptor for cat.
func (r *Registry) Lookup(cat core.Category) (Descriptor, bool) {
	if cat < 0 || cat >= core.NumCategories || r.byCat[cat] == nil {
		return Descriptor{}, false
	}
	return *r.byCat[cat], true
}
