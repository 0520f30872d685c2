//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/louis-kldzj/game-tools/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the options panel in the strip right of the content square.
type HUD struct {
	src      parameterProvider
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls    []hudControlState
	floatSetter core.FloatParameterSetter
	toggler     core.BoolParameterToggler
	panelLeft   int
	width       int
	title       string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD reading from src. src may additionally implement
// the control, setter and toggler interfaces of package core.
func NewHUD(src any, title string) *HUD {
	h := &HUD{title: title}
	if title == "" {
		h.title = "Controls"
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if p, ok := src.(parameterProvider); ok {
		h.src = p
	}
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := src.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	if toggler, ok := src.(core.BoolParameterToggler); ok {
		h.toggler = toggler
	}
	return h
}

// Update refreshes the cached snapshot and handles clicks inside the panel
// spanning [panelLeft, panelLeft+width).
func (h *HUD) Update(panelLeft, width int) {
	if h == nil {
		return
	}
	if width != h.width {
		h.width = width
		h.layoutControls()
	}
	h.panelLeft = panelLeft
	if h.src == nil {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = h.src.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at panelLeft with the given height.
func (h *HUD) Draw(screen *ebiten.Image, panelLeft, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 230})
	h.drawControls(height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(panelLeft), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.shortcut = param.Shortcut
		switch state.control.Type {
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.floatValue = parsed
			state.value = strconv.FormatFloat(parsed, 'f', 0, 64)
			state.hasValue = true
		case core.ParamTypeBool:
			on, err := strconv.ParseBool(param.Value)
			state.hasValue = err == nil
			state.on = on
			state.value = "off"
			if on {
				state.value = "on"
			}
		case core.ParamTypeChoice:
			state.hasValue = true
			state.value = param.Value
		default:
			state.hasValue = false
			state.value = "--"
		}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelLeft {
		return
	}
	px := mx - h.panelLeft
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeFloat:
			if pointInRect(px, my, state.minusRect) {
				h.applyAdjustment(state, -1)
				return
			}
			if pointInRect(px, my, state.plusRect) {
				h.applyAdjustment(state, 1)
				return
			}
		default:
			if pointInRect(px, my, state.toggleRect) && h.toggler != nil {
				h.toggler.ToggleParameter(state.control.Key)
				return
			}
		}
	}
}

func (h *HUD) target(state *hudControlState, direction int) float64 {
	step := state.control.Step
	if state.control.Factor {
		if step <= 1 {
			step = 1.25
		}
		if direction < 0 {
			return state.floatValue / step
		}
		return state.floatValue * step
	}
	if step <= 0 {
		step = 1
	}
	return state.floatValue + float64(direction)*step
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if h.floatSetter == nil || direction == 0 {
		return
	}
	target := h.target(state, direction)
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	if math.Abs(target-state.floatValue) < 1e-9 {
		return
	}
	if h.floatSetter.SetFloatParameter(state.control.Key, target) {
		state.floatValue = target
		state.value = strconv.FormatFloat(target, 'f', 0, 64)
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if h.floatSetter == nil {
		return false
	}
	if direction < 0 && state.control.HasMin {
		return state.floatValue > state.control.Min
	}
	if direction > 0 && state.control.HasMax {
		return state.floatValue < state.control.Max
	}
	return true
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

func (h *HUD) drawControls(height int) {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, dimColor)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		label := state.control.Label
		if state.shortcut != 0 {
			label = "[" + string(state.shortcut) + "] " + label
		}
		text.Draw(h.panel, label, face, panelPadding, labelY, labelColor)

		switch state.control.Type {
		case core.ParamTypeFloat:
			valueColor := labelColor
			if !state.hasValue {
				valueColor = dimColor
			}
			bounds := text.BoundString(face, state.value)
			valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
			text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)
			h.drawButton(state.minusRect, "-", state.hasValue && h.canAdjust(state, -1), false)
			h.drawButton(state.plusRect, "+", state.hasValue && h.canAdjust(state, 1), false)
		default:
			h.drawButton(state.toggleRect, state.value, state.hasValue && h.toggler != nil, state.on)
		}
	}
	footerY := height - panelPadding
	text.Draw(h.panel, "space regenerate  h hide  q quit", face, panelPadding, footerY, dimColor)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled, active bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if active {
		bg = color.RGBA{R: 70, G: 110, B: 90, A: 255}
	}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	fillRect(h.panel, h.pixel, rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func fillRect(dst, pixel *ebiten.Image, rect image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(pixel, op)
}

func (h *HUD) layoutControls() {
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		toggleRect := image.Rect(h.width-panelPadding-toggleWidth, buttonY, h.width-panelPadding, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
		h.controls[i].toggleRect = toggleRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	shortcut rune

	floatValue float64
	on         bool
	hasValue   bool

	top        int
	minusRect  image.Rectangle
	plusRect   image.Rectangle
	toggleRect image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	toggleWidth    = 110
	headerBaseline = 18
	labelBaseline  = 20
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
