package zoom

import (
	"errors"
	"math"
)

const (
	MinScale = 1.0
	MaxScale = 50.0

	// MaxTranslation bounds each axis of the pan offset, in percent.
	MaxTranslation = 50.0

	// SaturationOffset is the distance from the viewport centre, in percent,
	// past which the pointer adds no more pan.
	SaturationOffset = 30.0
)

// ErrInvalidDimensions is returned when an image size is not strictly positive.
var ErrInvalidDimensions = errors.New("zoom: image dimensions must be positive")

// Viewport reports the current size of the area the image is shown in.
// It is queried on every computation and never cached.
type Viewport interface {
	Size() (w, h float64)
}

// ViewportFunc adapts a plain function to the Viewport interface.
type ViewportFunc func() (w, h float64)

func (f ViewportFunc) Size() (float64, float64) { return f() }

// Transform is the combined result of a state change.
type Transform struct {
	Scale float64
	X, Y  float64 // translation in percent
}

// State holds scale and translation for one image and keeps them consistent.
type State struct {
	naturalWidth, naturalHeight float64
	viewport                    Viewport
	replay                      ReplayPolicy

	scale                      float64
	xTranslation, yTranslation float64
	lastPointerX, lastPointerY float64

	// pointerFresh is set by Translate and cleared by SetScale.
	pointerFresh bool
}

// NewState creates the state for an image of the given natural size.
func NewState(naturalWidth, naturalHeight float64, vp Viewport, replay ReplayPolicy) (*State, error) {
	if !(naturalWidth > 0) || !(naturalHeight > 0) || math.IsInf(naturalWidth, 0) || math.IsInf(naturalHeight, 0) {
		return nil, ErrInvalidDimensions
	}
	if vp == nil {
		return nil, errors.New("zoom: nil viewport")
	}
	s := &State{
		naturalWidth:  naturalWidth,
		naturalHeight: naturalHeight,
		viewport:      vp,
		replay:        replay,
	}
	s.ResetState()
	return s, nil
}

func (s *State) Scale() float64 { return s.scale }

func (s *State) Translation() (x, y float64) { return s.xTranslation, s.yTranslation }

func (s *State) LastPointer() (x, y float64) { return s.lastPointerX, s.lastPointerY }

func (s *State) NaturalSize() (w, h float64) { return s.naturalWidth, s.naturalHeight }

func (s *State) Transform() Transform {
	return Transform{Scale: s.scale, X: s.xTranslation, Y: s.yTranslation}
}

// SetScale clamps requested to [MinScale, MaxScale] and re-derives the
// translation from the cached pointer position.
func (s *State) SetScale(requested float64) Transform {
	s.scale = clamp(requested, MinScale, MaxScale)

	px, py := s.lastPointerX, s.lastPointerY
	if s.replay == ReplayCenter && !s.pointerFresh {
		px, py = 50, 50
	}
	s.pointerFresh = false
	s.applyPointer(px, py)
	return s.Transform()
}

// Translate derives the pan offset from a pointer position given as a
// percentage of the viewport width and height.
func (s *State) Translate(percentX, percentY float64) Transform {
	s.lastPointerX, s.lastPointerY = percentX, percentY
	s.pointerFresh = true
	s.applyPointer(percentX, percentY)
	return s.Transform()
}

func (s *State) applyPointer(percentX, percentY float64) {
	vw, vh := s.viewport.Size()
	fitW, fitH := FitSize(s.naturalWidth, s.naturalHeight, vw, vh)

	displayedW := fitW * s.scale
	displayedH := fitH * s.scale

	s.SetXTranslation(axisTranslation(MapPercent(percentX), displayedW, vw))
	s.SetYTranslation(axisTranslation(MapPercent(percentY), displayedH, vh))
}

// axisTranslation converts a pan intent in [-100, 100] into a translation in
// percent of the displayed size. Pointer right means image left.
func axisTranslation(intent, displayed, viewport float64) float64 {
	if !(displayed > viewport) {
		return 0
	}
	overflow := displayed - viewport
	scroll := intent * overflow / 200
	return -(scroll * 100 / displayed)
}

func (s *State) SetXTranslation(v float64) {
	s.xTranslation = clampTranslation(v)
}

func (s *State) SetYTranslation(v float64) {
	s.yTranslation = clampTranslation(v)
}

func clampTranslation(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, -MaxTranslation, MaxTranslation)
}

// ResetState returns every field to its default in a single assignment.
func (s *State) ResetState() {
	*s = State{
		naturalWidth:  s.naturalWidth,
		naturalHeight: s.naturalHeight,
		viewport:      s.viewport,
		replay:        s.replay,
		scale:         MinScale,
	}
}

// MapPercent maps a raw pointer percentage onto a signed pan intent in
// [-100, 100]. The response is linear up to SaturationOffset from the centre
// and flat beyond it.
func MapPercent(percent float64) float64 {
	p := percent - 50
	sign := 1.0
	if p < 0 {
		sign = -1
	}
	p = math.Min(math.Abs(p), SaturationOffset)
	return sign * p * 100 / SaturationOffset
}

// FitSize returns the size of a naturalW x naturalH image fitted inside the
// viewport with its aspect ratio kept. Images smaller than the fit in both
// dimensions keep their natural size.
func FitSize(naturalW, naturalH, viewportW, viewportH float64) (w, h float64) {
	heightRatio := naturalH / viewportH
	widthRatio := naturalW / viewportW
	if heightRatio > widthRatio {
		h = viewportH
		w = naturalW * h / naturalH
	} else {
		w = viewportW
		h = naturalH * w / naturalW
	}
	if naturalW < w && naturalH < h {
		return naturalW, naturalH
	}
	return w, h
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
