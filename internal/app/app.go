//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/render"
	"github.com/louis-kldzj/game-tools/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const statusDuration = 3 * time.Second

type dialogKind int

const (
	dialogLoad dialogKind = iota
	dialogSave
	dialogExport
)

type dialogResult struct {
	kind dialogKind
	path string
	err  error
}

// Game adapts the scenery engine to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	raster  *render.Rasterizer
	painter *render.FramePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *zap.Logger

	width, height int
	drawnRev      uint64
	drawn         bool
	chars         []rune

	dialogs    chan dialogResult
	dialogOpen bool

	status      string
	statusUntil time.Time
}

// New constructs a Game driving eng.
func New(eng *engine.Engine, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		eng:     eng,
		raster:  render.New(),
		painter: render.NewFramePainter(),
		hud:     ui.NewHUD(eng, "pixelgen"),
		overlay: ui.NewOverlay(),
		log:     logger,
		dialogs: make(chan dialogResult, 1),
	}
}

// Update handles per-frame logic: geometry sync, input, then the engine tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// An unknown size keeps the previous geometry.
	_ = g.eng.Sync(float64(g.width), float64(g.height))

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		switch r {
		case 'q', 'Q':
			return ebiten.Termination
		case 'o', 'O':
			g.openDialog(dialogLoad)
		case 'k', 'K':
			g.openDialog(dialogSave)
		case 'e', 'E':
			g.openDialog(dialogExport)
		default:
			g.eng.HandleKey(r)
		}
	}
	g.pollDialogs()

	geo := g.eng.Geometry()
	if g.eng.Options().Overlay {
		g.hud.Update(int(geo.PanelLeft()), int(geo.PanelWidth()))
	}
	g.overlay.Update()

	g.eng.Tick(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) openDialog(kind dialogKind) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	go func() {
		var res dialogResult
		res.kind = kind
		switch kind {
		case dialogLoad:
			res.path, res.err = PickOptionsFile()
		case dialogSave:
			res.path, res.err = PickSaveFile("Save options", "Options", "*.conf")
		case dialogExport:
			res.path, res.err = PickSaveFile("Export PNG", "PNG image", "*.png")
		}
		g.dialogs <- res
	}()
}

func (g *Game) pollDialogs() {
	select {
	case res := <-g.dialogs:
		g.dialogOpen = false
		g.finishDialog(res)
	default:
	}
}

func (g *Game) finishDialog(res dialogResult) {
	if errors.Is(res.err, ErrCanceled) {
		return
	}
	if res.err != nil {
		g.setStatus("dialog failed: %v", res.err)
		return
	}
	var err error
	switch res.kind {
	case dialogLoad:
		err = g.eng.LoadConfig(res.path)
	case dialogSave:
		res.path = EnsureExt(res.path, ".conf")
		err = g.eng.SaveConfig(res.path)
	case dialogExport:
		res.path = EnsureExt(res.path, ".png")
		err = WritePNG(res.path, g.raster.Render(g.eng.Snapshot()))
		g.drawn = false
	}
	if err != nil {
		g.log.Error("dialog action failed", zap.String("path", res.path), zap.Error(err))
		g.setStatus("%v", err)
		return
	}
	g.setStatus("%s", res.path)
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusUntil = time.Now().Add(statusDuration)
}

// Draw renders the current scenery, re-rasterising only after a change.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.eng.Snapshot()
	if !g.drawn || frame.Revision != g.drawnRev {
		g.painter.Upload(g.raster.Render(frame))
		g.drawnRev = frame.Revision
		g.drawn = true
	}
	g.painter.Blit(screen, g.width, g.height)
	if frame.Options.Overlay {
		g.hud.Draw(screen, int(frame.Geometry.PanelLeft()), g.height)
	}
	g.overlay.Draw(screen, frame)
	if g.status != "" && time.Now().Before(g.statusUntil) {
		text.Draw(screen, g.status, basicfont.Face7x13, 8, g.height-8, color.White)
	}
}

// Layout adopts the window size as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
