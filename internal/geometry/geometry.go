// Package geometry tracks the viewport and derives the square content region
// every generator samples from.
package geometry

import (
	"errors"
	"math"
)

// ErrUnavailable reports a viewport size that is not known yet.
var ErrUnavailable = errors.New("geometry: viewport size unavailable")

// Vec3 is a world-space position. The origin sits at the viewport centre
// with +Y up; Z orders layers.
type Vec3 struct {
	X, Y, Z float64
}

// Sampler is the random stream RandomPosition draws from.
type Sampler interface {
	Range(lo, hi float64) float64
}

// Geometry holds the viewport size in device pixels. The zero value is the
// degenerate start-up geometry.
type Geometry struct {
	Width  float64
	Height float64

	// Overlay marks the right-hand strip as occupied by the options panel,
	// which pushes the content square against the left edge.
	Overlay bool
}

// New returns a geometry for the given size.
func New(width, height float64, overlay bool) Geometry {
	return Geometry{Width: math.Max(width, 0), Height: math.Max(height, 0), Overlay: overlay}
}

// Sync updates the size from the host. Non-positive sizes keep the previous
// value and report ErrUnavailable.
func (g *Geometry) Sync(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return ErrUnavailable
	}
	g.Width = width
	g.Height = height
	return nil
}

// Known reports whether both dimensions are positive.
func (g Geometry) Known() bool { return g.Width > 0 && g.Height > 0 }

// SquareSide is the side of the square content region.
func (g Geometry) SquareSide() float64 { return math.Min(g.Width, g.Height) }

// PanelWidth is the width of the overlay strip, zero when the overlay is hidden.
func (g Geometry) PanelWidth() float64 {
	if !g.Overlay {
		return 0
	}
	return g.Width - g.SquareSide()
}

// PanelLeft is the device x at which the overlay strip begins.
func (g Geometry) PanelLeft() float64 { return g.Width - g.PanelWidth() }

// ContentWidth is the horizontal extent available to the scenery. Together
// with the offset it always satisfies ContentWidth + 2|Offset| = Width.
func (g Geometry) ContentWidth() float64 { return g.Width - g.PanelWidth() }

// Offset is the horizontal shift of the content centre from the viewport
// centre. It is non-positive: the panel occupies the right side.
func (g Geometry) Offset() float64 {
	if !g.Overlay {
		return 0
	}
	return -(g.Width/2 - g.SquareSide()/2)
}

// AspectRatio is width over height, zero while the height is unknown.
func (g Geometry) AspectRatio() float64 {
	if g.Height <= 0 {
		return 0
	}
	return g.Width / g.Height
}

// RandomPosition samples uniformly inside the centred content square at the
// given depth. Degenerate geometry yields the zero vector.
func (g Geometry) RandomPosition(depth float64, rng Sampler) Vec3 {
	side := g.SquareSide()
	if side <= 0 || rng == nil {
		return Vec3{}
	}
	half := side / 2
	off := g.Offset()
	return Vec3{
		X: rng.Range(off-half, off+half),
		Y: rng.Range(-half, half),
		Z: depth,
	}
}

// Contains reports whether v lies inside the content square, ignoring depth.
func (g Geometry) Contains(v Vec3) bool {
	half := g.SquareSide() / 2
	off := g.Offset()
	return v.X >= off-half && v.X <= off+half && v.Y >= -half && v.Y <= half
}

// Preset is a named fixed resolution for headless rendering.
type Preset struct {
	Name          string
	Width, Height int
}

// Presets lists the built-in resolutions.
var Presets = []Preset{
	{Name: "hd", Width: 1280, Height: 720},
	{Name: "fhd", Width: 1920, Height: 1080},
	{Name: "qhd", Width: 2560, Height: 1440},
	{Name: "4k", Width: 3840, Height: 2160},
	{Name: "square", Width: 1024, Height: 1024},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Geometry returns the preset as a geometry without overlay.
func (p Preset) Geometry() Geometry {
	return New(float64(p.Width), float64(p.Height), false)
}
