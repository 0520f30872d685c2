// Package render rasterises a scenery frame on the CPU at art-pixel
// resolution. Front-ends scale the canvas up with nearest filtering.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/layers"
	"github.com/louis-kldzj/game-tools/internal/scene"
)

const (
	nebulaThreshold = 0.42
	dustThreshold   = 0.6
	dustFrequency   = 4.0
	dustAlpha       = 150
	planetBands     = 5
	panelDarken     = 0.6
	maxCachedNoise  = 64
)

// paintOrder puts planets in front of the stars they sit deeper than.
var paintOrder = []core.Category{
	core.Background,
	core.Nebula,
	core.StarStuff,
	core.Stars,
	core.Planets,
	core.Overlay,
}

// Rasterizer paints frames. It is not safe for concurrent use; the returned
// image is reused by the next Render call.
type Rasterizer struct {
	bank   *noiseBank
	canvas *image.RGBA
}

// New returns a rasteriser with empty noise caches.
func New() *Rasterizer {
	return &Rasterizer{bank: newNoiseBank()}
}

// CanvasSize returns the art-pixel canvas for a viewport: density pixels
// tall and as wide as the aspect ratio requires. An unknown viewport gives a
// square canvas.
func CanvasSize(g geometry.Geometry, density float64) (w, h int) {
	h = int(math.Round(density))
	if h < 1 {
		h = 1
	}
	if !g.Known() {
		return h, h
	}
	w = int(math.Round(float64(h) * g.AspectRatio()))
	if w < 1 {
		w = 1
	}
	return w, h
}

// view maps between world space and canvas pixels.
type view struct {
	w, h   int
	worldW float64
	worldH float64
	sx, sy float64
	side   float64
	offset float64
}

func newView(g geometry.Geometry, w, h int) view {
	ww, wh := g.Width, g.Height
	if !g.Known() {
		ww, wh = float64(w), float64(h)
	}
	side := math.Min(ww, wh)
	return view{
		w: w, h: h,
		worldW: ww, worldH: wh,
		sx: ww / float64(w), sy: wh / float64(h),
		side:   side,
		offset: g.Offset(),
	}
}

func (v view) toWorld(px, py int) (x, y float64) {
	return (float64(px)+0.5)*v.sx - v.worldW/2, v.worldH/2 - (float64(py)+0.5)*v.sy
}

func (v view) toCanvas(x, y float64) (px, py float64) {
	return (x + v.worldW/2) / v.sx, (v.worldH/2 - y) / v.sy
}

// squareUV returns the position inside the content square in unit
// coordinates. Outside the square ok is false unless tile wraps u.
func (v view) squareUV(x, y float64, tile bool) (u, w float64, ok bool) {
	if v.side <= 0 {
		return 0, 0, false
	}
	u = (x-v.offset)/v.side + 0.5
	w = 0.5 - y/v.side
	if u < 0 || u >= 1 {
		if !tile {
			return 0, 0, false
		}
		u -= math.Floor(u)
	}
	if w < 0 || w >= 1 {
		return 0, 0, false
	}
	return u, w, true
}

// Render paints f and returns the canvas.
func (r *Rasterizer) Render(f engine.Frame) *image.RGBA {
	w, h := CanvasSize(f.Geometry, f.Options.Density)
	if r.canvas == nil || r.canvas.Rect.Dx() != w || r.canvas.Rect.Dy() != h {
		r.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		clear(r.canvas.Pix)
	}
	if r.bank.Len() > maxCachedNoise {
		r.bank.reset()
	}
	v := newView(f.Geometry, w, h)
	byCat := make(map[core.Category][]scene.Instance, len(paintOrder))
	for _, inst := range f.Instances {
		byCat[inst.ID.Category] = append(byCat[inst.ID.Category], inst)
	}
	for _, cat := range paintOrder {
		for _, inst := range byCat[cat] {
			r.paint(v, inst.Material)
		}
	}
	return r.canvas
}

func (r *Rasterizer) paint(v view, m core.Material) {
	switch m := m.(type) {
	case *layers.BackgroundMaterial:
		fillRGBA(r.canvas.Pix, m.Color)
	case *layers.NebulaMaterial:
		r.paintNebula(v, m)
	case *layers.StarStuffMaterial:
		r.paintDust(v, m)
	case *layers.PlanetMaterial:
		r.paintPlanet(v, m)
	case *layers.StarMaterial:
		r.paintStar(v, m)
	case *layers.OverlayMaterial:
		r.paintPanel(v, m)
	}
}

func (r *Rasterizer) paintNebula(v view, m *layers.NebulaMaterial) {
	for py := 0; py < v.h; py++ {
		for px := 0; px < v.w; px++ {
			x, y := v.toWorld(px, py)
			u, w, ok := v.squareUV(x, y, m.Tile)
			if !ok {
				continue
			}
			n := r.bank.fbm(m.Seed, u*m.Size, w*m.Size, m.Octaves)
			if n < nebulaThreshold {
				continue
			}
			t := (n - nebulaThreshold) / (1 - nebulaThreshold)
			c := sampleRow(m.Texture, t)
			if m.Darken {
				c = toward(c, m.Background, 0.5*(1-t))
			}
			blendPixel(r.canvas, px, py, c)
		}
	}
}

func (r *Rasterizer) paintDust(v view, m *layers.StarStuffMaterial) {
	for py := 0; py < v.h; py++ {
		for px := 0; px < v.w; px++ {
			x, y := v.toWorld(px, py)
			u, w, ok := v.squareUV(x, y, m.Tile)
			if !ok {
				continue
			}
			d := r.bank.dust(m.Seed, u*m.Size*dustFrequency, w*m.Size*dustFrequency)
			if d < dustThreshold {
				continue
			}
			c := sampleRow(m.Texture, 0.5+(d-dustThreshold))
			if m.Darken {
				c = toward(c, m.Background, 0.4)
			}
			c.A = dustAlpha
			blendPixel(r.canvas, px, py, c)
		}
	}
}

func (r *Rasterizer) paintPlanet(v view, m *layers.PlanetMaterial) {
	cx, cy := v.toCanvas(m.Position.X, m.Position.Y)
	rad := m.Radius / v.sy
	if rad < 1 {
		rad = 1
	}
	lx, ly := m.LightOrigin[0]*2-1, m.LightOrigin[1]*2-1
	x0, x1 := int(math.Floor(cx-rad)), int(math.Ceil(cx+rad))
	y0, y1 := int(math.Floor(cy-rad)), int(math.Ceil(cy+rad))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - cx) / rad
			dy := (float64(py) + 0.5 - cy) / rad
			if dx*dx+dy*dy > 1 {
				continue
			}
			light := 1 - math.Hypot(dx-lx, dy-ly)/2
			surface := r.bank.fbm(m.Seed, dx*m.Size/2, dy*m.Size/2, m.Octaves)
			b := clamp01(light*0.75 + surface*0.35 - 0.1)
			b = math.Floor(b*planetBands) / planetBands
			c := sampleRow(m.Texture, b)
			if m.Darken {
				c = toward(c, m.Background, 0.3*(1-b))
			}
			blendPixel(r.canvas, px, py, c)
		}
	}
}

// starShapes lists the sprite arms per frame as unit offsets.
var starShapes = [layers.StarFrames][][2]int{
	{{0, 0}},
	{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}},
	{{0, 0}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}},
	{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}, {2, 0}, {-2, 0}, {0, 2}, {0, -2}},
	{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}},
	{{0, 0}, {2, 0}, {-2, 0}, {0, 2}, {0, -2}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}},
}

func (r *Rasterizer) paintStar(v view, m *layers.StarMaterial) {
	cx, cy := v.toCanvas(m.Position.X, m.Position.Y)
	px, py := int(math.Floor(cx)), int(math.Floor(cy))
	frame := m.Frame
	if frame < 0 || frame >= len(starShapes) {
		frame = 0
	}
	reach := int(math.Round(m.Scale))
	if reach < 1 {
		reach = 1
	}
	bright := toward(m.Tint, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.5)
	for _, off := range starShapes[frame] {
		c := m.Tint
		if off == [2]int{} {
			c = bright
		}
		blendPixel(r.canvas, px+off[0]*reach, py+off[1]*reach, c)
	}
}

func (r *Rasterizer) paintPanel(v view, m *layers.OverlayMaterial) {
	if m.Width <= 0 {
		return
	}
	left := int(math.Floor(m.Left / v.sx))
	bg := color.NRGBA{A: uint8(255 * panelDarken)}
	for py := 0; py < v.h; py++ {
		for px := left; px < v.w; px++ {
			blendPixel(r.canvas, px, py, bg)
		}
	}
}

// toward blends c towards target by t in sRGB, keeping c's alpha.
func toward(c, target color.NRGBA, t float64) color.NRGBA {
	a, _ := colorful.MakeColor(opaque(c))
	b, _ := colorful.MakeColor(opaque(target))
	r8, g8, b8 := a.BlendRgb(b, clamp01(t)).Clamped().RGB255()
	return color.NRGBA{R: r8, G: g8, B: b8, A: c.A}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
}
