//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/layers"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws optional debugging visuals on top of the scenery.
type Overlay struct {
	showBounds  bool
	showMarkers bool
	showStats   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the debug layers: 1 content square, 2 instance markers,
// 3 instance counts.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBounds = !o.showBounds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMarkers = !o.showMarkers
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled debug layers for f onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, f engine.Frame) {
	g := f.Geometry
	if !g.Known() {
		return
	}
	toScreen := func(x, y float64) (float64, float64) {
		return x + g.Width/2, g.Height/2 - y
	}
	if o.showBounds {
		side := g.SquareSide()
		left, top := toScreen(g.Offset()-side/2, side/2)
		right, bottom := left+side, top+side
		col := color.RGBA{R: 80, G: 200, B: 240, A: 200}
		o.drawLine(screen, left, top, right, top, 1, col)
		o.drawLine(screen, right, top, right, bottom, 1, col)
		o.drawLine(screen, right, bottom, left, bottom, 1, col)
		o.drawLine(screen, left, bottom, left, top, 1, col)
	}
	if o.showMarkers {
		for _, inst := range f.Instances {
			switch m := inst.Material.(type) {
			case *layers.PlanetMaterial:
				x, y := toScreen(m.Position.X, m.Position.Y)
				o.drawCircle(screen, x, y, m.Radius, color.RGBA{R: 255, G: 170, B: 60, A: 220})
				lx := x + (m.LightOrigin[0]*2-1)*m.Radius
				ly := y + (m.LightOrigin[1]*2-1)*m.Radius
				o.drawPoint(screen, lx, ly, 3, color.RGBA{R: 255, G: 255, B: 180, A: 255})
			case *layers.StarMaterial:
				x, y := toScreen(m.Position.X, m.Position.Y)
				o.drawPoint(screen, x, y, 2*m.Scale, color.RGBA{R: 120, G: 255, B: 140, A: 220})
			}
		}
	}
	if o.showStats {
		var counts [core.NumCategories]int
		animated := 0
		for _, inst := range f.Instances {
			counts[inst.ID.Category]++
			if inst.Animation != nil {
				animated++
			}
		}
		y := 16
		for _, c := range core.Categories() {
			line := fmt.Sprintf("%-10s %3d", c, counts[c])
			text.Draw(screen, line, basicfont.Face7x13, 8, y, color.White)
			y += 14
		}
		text.Draw(screen, fmt.Sprintf("animated   %3d  rev %d", animated, f.Revision), basicfont.Face7x13, 8, y, color.White)
	}
}

func (o *Overlay) drawCircle(screen *ebiten.Image, cx, cy, r float64, col color.RGBA) {
	const segments = 24
	px, py := cx+r, cy
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		o.drawLine(screen, px, py, x, y, 1, col)
		px, py = x, y
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
