package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"

	"gallery-zoom/zoom"
)

// Camera mirrors the transform last published by a zoom.Controller and turns
// it into draw geometry. Translation is in percent of the fitted image size,
// applied before scaling, the same way a CSS "scale(s) translate(x%, y%)"
// transform would place it.
type Camera struct {
	Scale float64
	X, Y  float64
}

func NewCamera() *Camera {
	return &Camera{Scale: 1}
}

// Attach subscribes the camera to the controller's notifications.
func (c *Camera) Attach(ctrl *zoom.Controller) {
	ctrl.AddScaleListener(c.SetScale)
	ctrl.AddTranslationListener(c.SetTranslation)
}

func (c *Camera) SetScale(s float64) { c.Scale = s }

func (c *Camera) SetTranslation(x, y float64) { c.X, c.Y = x, y }

// GeoM maps image pixels of a naturalW x naturalH image onto a vw x vh screen.
func (c *Camera) GeoM(naturalW, naturalH, vw, vh float64) ebiten.GeoM {
	fitW, fitH := zoom.FitSize(naturalW, naturalH, vw, vh)

	var m ebiten.GeoM
	m.Scale(fitW/naturalW, fitH/naturalH)
	m.Translate(-fitW/2, -fitH/2)
	m.Translate(c.X/100*fitW, c.Y/100*fitH)
	m.Scale(c.Scale, c.Scale)
	m.Translate(vw/2, vh/2)
	return m
}

func (c *Camera) ImageToScreen(ix, iy, naturalW, naturalH, vw, vh float64) (float64, float64) {
	m := c.GeoM(naturalW, naturalH, vw, vh)
	return m.Apply(ix, iy)
}

func (c *Camera) ScreenToImage(sx, sy, naturalW, naturalH, vw, vh float64) (float64, float64) {
	m := c.GeoM(naturalW, naturalH, vw, vh)
	m.Invert()
	return m.Apply(sx, sy)
}
