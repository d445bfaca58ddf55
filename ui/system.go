package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

const (
	buttonSize   = 30
	buttonMargin = 10
)

type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

// Callbacks wires the buttons to the zoom session.
type Callbacks struct {
	OnToggleZoom func()
	OnZoomIn     func()
	OnZoomOut    func()
	IsZoomed     func() bool
}

type UISystem struct {
	buttons       []*Button
	toggle        *Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	isZoomed      func() bool
	drawText      DrawTextFunc
	Debug         *DebugPanel
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), cb Callbacks, drawText DrawTextFunc) *UISystem {
	ui := &UISystem{
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		isZoomed:      cb.IsZoomed,
		drawText:      drawText,
		Debug:         &DebugPanel{},
	}
	ui.initButtons(cb)
	return ui
}

func (ui *UISystem) initButtons(cb Callbacks) {
	ui.toggle = &Button{Label: "Zoom", W: 2 * buttonSize, H: buttonSize, OnClick: cb.OnToggleZoom}
	zoomIn := &Button{Label: "+", W: buttonSize, H: buttonSize, OnClick: cb.OnZoomIn}
	zoomOut := &Button{Label: "-", W: buttonSize, H: buttonSize, OnClick: cb.OnZoomOut}
	ui.buttons = []*Button{ui.toggle, zoomIn, zoomOut}
	ui.updateButtonPositions()
}

// updateButtonPositions lays the buttons out right to left from the top-right corner.
func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float32(w)
	for _, b := range ui.buttons {
		x -= b.W + buttonMargin
		b.X = x
		b.Y = buttonMargin
	}
	zoomed := ui.isZoomed != nil && ui.isZoomed()
	ui.toggle.Label = "Zoom"
	if zoomed {
		ui.toggle.Label = "Exit"
	}
	// +/- only act while zoomed.
	for _, b := range ui.buttons[1:] {
		b.Disabled = !zoomed
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

func (ui *UISystem) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		ui.Click(mx, my)
	}
}

// Click dispatches a click at (mx, my) to the button under it and reports
// whether one was hit.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil && !b.Disabled {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		b.Draw(screen, ui.getFontFace, ui.drawText)
	}
	if ui.Debug != nil {
		ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
	}
}
