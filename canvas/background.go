package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawBackdrop fills the screen and, when the image does not cover the whole
// viewport, outlines the area it occupies.
func DrawBackdrop(cam *Camera, screen *ebiten.Image, naturalW, naturalH float64, bg, frame color.Color) {
	screen.Fill(bg)
	if naturalW <= 0 || naturalH <= 0 {
		return
	}

	b := screen.Bounds()
	vw, vh := float64(b.Dx()), float64(b.Dy())
	x0, y0, x1, y1 := ImageBounds(cam, naturalW, naturalH, vw, vh)
	if x0 <= 0 && y0 <= 0 && x1 >= vw && y1 >= vh {
		return
	}
	vector.StrokeRect(screen, float32(x0)-1, float32(y0)-1, float32(x1-x0)+2, float32(y1-y0)+2, 1, frame, false)
}

// ImageBounds returns the screen rectangle covered by the image.
func ImageBounds(cam *Camera, naturalW, naturalH, vw, vh float64) (x0, y0, x1, y1 float64) {
	m := cam.GeoM(naturalW, naturalH, vw, vh)
	ax, ay := m.Apply(0, 0)
	bx, by := m.Apply(naturalW, naturalH)
	return math.Min(ax, bx), math.Min(ay, by), math.Max(ax, bx), math.Max(ay, by)
}
