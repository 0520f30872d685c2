// Package layers defines the six scenery categories: their materials and the
// randomised derivation of each new instance.
package layers

import (
	"image"
	"image/color"

	"github.com/louis-kldzj/game-tools/internal/anim"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/palette"
)

// BackgroundMaterial fills the whole viewport.
type BackgroundMaterial struct {
	Color   color.NRGBA
	Palette palette.ID
}

func (*BackgroundMaterial) Category() core.Category { return core.Background }

// Noise holds the parameters shared by the noise-driven layers.
type Noise struct {
	// Size is the noise scale; it is the animated value.
	Size    float64
	Octaves int
	Seed    float64
	// Pixels is the art-pixel density the layer is quantised to.
	Pixels float64
	Tile   bool
	Darken bool
	// OffsetX shifts the field so it lines up with the content square.
	OffsetX    float64
	Palette    palette.ID
	Texture    *image.NRGBA
	Background color.NRGBA
}

func (n *Noise) Get() float64  { return n.Size }
func (n *Noise) Set(v float64) { n.Size = v }

// AnimatedValue exposes Size to the oscillator.
func (n *Noise) AnimatedValue() anim.ValueHolder { return n }

// NebulaMaterial is the full-field nebula cloud.
type NebulaMaterial struct{ Noise }

func (*NebulaMaterial) Category() core.Category { return core.Nebula }

// StarStuffMaterial is the fine dust over the nebula.
type StarStuffMaterial struct{ Noise }

func (*StarStuffMaterial) Category() core.Category { return core.StarStuff }

// PlanetMaterial is one shaded disc.
type PlanetMaterial struct {
	Noise
	Position geometry.Vec3
	Radius   float64
	// LightOrigin is the lit point on the disc in unit coordinates.
	LightOrigin [2]float64
}

func (*PlanetMaterial) Category() core.Category { return core.Planets }

// StarMaterial is one bright star sprite.
type StarMaterial struct {
	Position geometry.Vec3
	Scale    float64
	// Frame selects one of StarFrames sprite shapes.
	Frame int
	Tint  color.NRGBA
}

func (*StarMaterial) Category() core.Category { return core.Stars }

// OverlayMaterial is the options panel region.
type OverlayMaterial struct {
	Left   float64
	Width  float64
	Height float64
	Params core.ParameterSnapshot
}

func (*OverlayMaterial) Category() core.Category { return core.Overlay }
