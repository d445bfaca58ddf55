package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the last error in the bottom-right corner and an
// optional block of info lines in the bottom-left.
type DebugPanel struct {
	Error string
	Info  []string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) SetInfo(lines ...string) {
	d.Info = lines
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText DrawTextFunc) {
	if d == nil || getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	w, h := getScreenSize()

	if len(d.Info) > 0 {
		lineH := 16
		ph := len(d.Info)*lineH + 12
		y := h - ph - 10
		vector.DrawFilledRect(screen, 10, float32(y), 260, float32(ph), color.RGBA{20, 20, 25, 180}, false)
		drawText(screen, face, strings.Join(d.Info, "\n"), 16, y+6, color.RGBA{220, 220, 220, 255})
	}

	if d.Error == "" {
		return
	}
	pw, ph := 300, 80
	x := w - pw - 10
	y := h - ph - 10
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), color.RGBA{40, 40, 40, 220}, false)
	drawText(screen, face, d.Error, x+8, y+8, color.RGBA{255, 200, 50, 255})
}
