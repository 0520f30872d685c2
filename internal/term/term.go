// Package term drives the scenery in a terminal. Each cell shows two art
// pixels stacked with a half-block glyph, so cells read as square pixels.
package term

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/core"
	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/render"
)

const halfBlock = '▀'

// Term paints engine frames onto a tcell screen.
type Term struct {
	screen tcell.Screen
	eng    *engine.Engine
	raster *render.Rasterizer
	step   *core.FixedStep
	log    *zap.Logger

	cols, rows int
	drawnRev   uint64
	drawn      bool
}

// New wires a terminal front-end. The screen must already be initialised.
func New(screen tcell.Screen, eng *engine.Engine, tps int, logger *zap.Logger) *Term {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Term{
		screen: screen,
		eng:    eng,
		raster: render.New(),
		step:   core.NewFixedStep(tps),
		log:    logger,
	}
	t.cols, t.rows = screen.Size()
	return t
}

// Run processes events and ticks until ctx is done or the user quits.
func (t *Term) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 64)
	go t.pump(ctx, events)

	ticker := time.NewTicker(t.step.Step())
	defer ticker.Stop()

	t.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if t.step.ShouldStep() {
				t.Frame()
			}
		}
	}
}

// pump forwards screen events until the screen is finalised or ctx is done.
func (t *Term) pump(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (t *Term) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' || r == 'Q' {
				return false
			}
			if !t.eng.HandleKey(r) {
				t.log.Debug("unbound key", zap.String("key", string(r)))
			}
		}
	case *tcell.EventResize:
		t.cols, t.rows = ev.Size()
		t.screen.Sync()
		t.drawn = false
	}
	return true
}

// Frame runs one engine tick and repaints when the scenery changed.
func (t *Term) Frame() {
	if err := t.eng.Sync(float64(t.cols), float64(t.rows*2)); err != nil {
		t.log.Debug("viewport sync", zap.Error(err))
	}
	t.eng.Tick(t.step.Seconds())
	f := t.eng.Snapshot()
	if t.drawn && f.Revision == t.drawnRev {
		return
	}
	t.Draw(f)
	t.drawnRev = f.Revision
	t.drawn = true
}

// Draw paints f on the screen.
func (t *Term) Draw(f engine.Frame) {
	if t.cols <= 0 || t.rows <= 0 {
		return
	}
	canvas := t.raster.Render(f)
	panelLeft := t.cols
	if f.Options.Overlay && f.Geometry.Known() {
		panelLeft = int(f.Geometry.PanelLeft())
	}
	for y := 0; y < t.rows; y++ {
		for x := 0; x < panelLeft && x < t.cols; x++ {
			top := sample(canvas, x, 2*y, t.cols, t.rows*2)
			bottom := sample(canvas, x, 2*y+1, t.cols, t.rows*2)
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	if panelLeft < t.cols {
		t.drawPanel(f.Options, panelLeft)
	}
	t.screen.Show()
}

// PanelLines renders the options as panel text.
func PanelLines(o config.Options) []string {
	var lines []string
	for _, g := range o.Parameters().Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			key := " "
			if p.Shortcut != 0 {
				key = string(p.Shortcut)
			}
			lines = append(lines, fmt.Sprintf(" [%s] %-12s %s", key, p.Label, p.Value))
		}
		lines = append(lines, "")
	}
	return append(lines, " space regenerate", " +/- density", " h hide  q quit")
}

func (t *Term) drawPanel(o config.Options, left int) {
	bg := tcell.StyleDefault.Background(tcell.NewRGBColor(16, 16, 20)).Foreground(tcell.NewRGBColor(220, 220, 230))
	for y := 0; y < t.rows; y++ {
		for x := left; x < t.cols; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}
	for y, line := range PanelLines(o) {
		if y >= t.rows {
			break
		}
		x := left + 1
		for _, r := range line {
			if x >= t.cols {
				break
			}
			t.screen.SetContent(x, y, r, nil, bg)
			x++
		}
	}
}

// sample reads the canvas pixel covering virtual pixel (x, y) of a w x h
// grid, composited over black.
func sample(canvas *image.RGBA, x, y, w, h int) color.RGBA {
	cw, ch := canvas.Rect.Dx(), canvas.Rect.Dy()
	if cw == 0 || ch == 0 || w <= 0 || h <= 0 {
		return color.RGBA{A: 255}
	}
	cx := x * cw / w
	cy := y * ch / h
	c := canvas.RGBAAt(canvas.Rect.Min.X+cx, canvas.Rect.Min.Y+cy)
	// Premultiplied channels are already composited over black.
	c.A = 255
	return c
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
