// Package config holds the shared configuration state: the feature toggles,
// palette selector and density every generator reads, plus the single
// mutation entry point input handlers go through.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/palette"
)

const (
	// MinDensity and MaxDensity bound the pixel density.
	MinDensity = 25.0
	MaxDensity = 1600.0
	// DensityFactor is the multiplicative step of the density keys.
	DensityFactor = 1.25
)

// ErrInvalidDensity reports a non-positive or non-finite density.
var ErrInvalidDensity = errors.New("config: density must be a positive finite number")

// Options is the process-wide configuration state.
type Options struct {
	// Density is the number of art pixels along the viewport height.
	Density float64
	Palette palette.ID

	Stars   bool
	Dust    bool
	Nebulae bool
	Planets bool

	Tile         bool
	Darken       bool
	Transparency bool
	Animate      bool

	// Overlay shows the options panel in a strip right of the content square.
	Overlay bool
}

// Default returns the standard configuration.
func Default() Options {
	return Options{
		Density: 200,
		Palette: palette.FunkyFutures,
		Stars:   true,
		Dust:    true,
		Nebulae: true,
		Planets: true,
		Overlay: true,
	}
}

// Validate reports values outside the supported ranges.
func (o Options) Validate() error {
	if !(o.Density > 0) || math.IsInf(o.Density, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, o.Density)
	}
	if !o.Palette.Valid() {
		return fmt.Errorf("%w: selector %d", palette.ErrUnknown, int(o.Palette))
	}
	return nil
}

// State couples the options with the viewport geometry. The geometry's
// overlay flag always mirrors Options.Overlay.
type State struct {
	Options  Options
	Viewport geometry.Geometry
}

// NewState returns a state with zero geometry.
func NewState(o Options) *State {
	return &State{Options: o, Viewport: geometry.Geometry{Overlay: o.Overlay}}
}

// Apply mutates the options. It reports whether readers must regenerate;
// invalid mutations leave the state untouched.
func (s *State) Apply(m Mutation) (bool, error) {
	changed, err := s.Options.Apply(m)
	s.Viewport.Overlay = s.Options.Overlay
	return changed, err
}

// Sync records the host viewport size.
func (s *State) Sync(width, height float64) error {
	s.Viewport.Overlay = s.Options.Overlay
	return s.Viewport.Sync(width, height)
}
