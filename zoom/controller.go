package zoom

import (
	"fmt"
	"log/slog"
)

// Phase is the controller's position in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseIdle
	PhaseZoomed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseIdle:
		return "idle"
	case PhaseZoomed:
		return "zoomed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type (
	ScaleListener       func(scale float64)
	TranslationListener func(x, y float64)
	ViewListener        func(zoomed bool)
)

// Controller turns primitive input events into State mutations and fans the
// results out to registered listeners. It is the only writer of its State and
// is meant to be driven from a single goroutine.
type Controller struct {
	viewport Viewport
	opts     Options
	logger   *slog.Logger

	state *State
	phase Phase

	scaleListeners       []ScaleListener
	translationListeners []TranslationListener
	viewListeners        []ViewListener
}

// NewController returns an uninitialized controller. Call Init once the
// image's natural size is known.
func NewController(vp Viewport, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		viewport:             vp,
		opts:                 o,
		logger:               o.Logger.With("component", "zoom"),
		scaleListeners:       []ScaleListener{},
		translationListeners: []TranslationListener{},
		viewListeners:        []ViewListener{},
	}
}

// Init arms the controller for a new image. Any previous zoom session is
// left and its state discarded.
func (c *Controller) Init(naturalWidth, naturalHeight float64) error {
	st, err := NewState(naturalWidth, naturalHeight, c.viewport, c.opts.Replay)
	if err != nil {
		return fmt.Errorf("init %vx%v: %w", naturalWidth, naturalHeight, err)
	}
	if c.phase == PhaseZoomed {
		c.leaveZoom()
	}
	c.state = st
	c.setPhase(PhaseIdle)
	return nil
}

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) Ready() bool { return c.phase != PhaseUninitialized }

func (c *Controller) Zoomed() bool { return c.phase == PhaseZoomed }

func (c *Controller) Options() Options { return c.opts }

func (c *Controller) Viewport() Viewport { return c.viewport }

// Transform reports the current scale and translation. An uninitialized
// controller reports the defaults.
func (c *Controller) Transform() Transform {
	if c.state == nil {
		return Transform{Scale: MinScale}
	}
	return c.state.Transform()
}

// NaturalSize returns the size passed to the last successful Init.
func (c *Controller) NaturalSize() (w, h float64) {
	if c.state == nil {
		return 0, 0
	}
	return c.state.NaturalSize()
}

// ZoomIn multiplies the scale by the zoom step. It reports whether the
// event was applied; events outside the zoomed phase are ignored.
func (c *Controller) ZoomIn() bool {
	if !c.Zoomed() {
		return false
	}
	c.applyScale(c.state.Scale() * c.opts.ZoomStep)
	return true
}

// ZoomOut divides the scale by the zoom step.
func (c *Controller) ZoomOut() bool {
	if !c.Zoomed() {
		return false
	}
	c.applyScale(c.state.Scale() / c.opts.ZoomStep)
	return true
}

func (c *Controller) applyScale(requested float64) {
	before := c.state.Transform()
	after := c.state.SetScale(requested)
	c.notifyScale(after.Scale)
	if after.X != before.X || after.Y != before.Y {
		c.notifyTranslation(after.X, after.Y)
	}
}

// Translate pans towards the pointer position, given in percent of the
// viewport.
func (c *Controller) Translate(percentX, percentY float64) bool {
	if !c.Zoomed() {
		return false
	}
	t := c.state.Translate(percentX, percentY)
	c.notifyTranslation(t.X, t.Y)
	return true
}

// ToggleZoom switches between the idle and zoomed phases and reports the new
// zoomed flag. It does nothing before Init.
func (c *Controller) ToggleZoom() bool {
	switch c.phase {
	case PhaseIdle:
		c.setPhase(PhaseZoomed)
		c.notifyView(true)
	case PhaseZoomed:
		c.leaveZoom()
	}
	return c.Zoomed()
}

func (c *Controller) leaveZoom() {
	c.setPhase(PhaseIdle)
	c.notifyView(false)
	c.Reset()
}

// Reset returns the state to its defaults and publishes them. The phase is
// unchanged.
func (c *Controller) Reset() {
	if c.state == nil {
		return
	}
	c.state.ResetState()
	t := c.state.Transform()
	c.notifyScale(t.Scale)
	c.notifyTranslation(t.X, t.Y)
}

func (c *Controller) AddScaleListener(fn ScaleListener) {
	c.scaleListeners = append(c.scaleListeners, fn)
}

func (c *Controller) AddTranslationListener(fn TranslationListener) {
	c.translationListeners = append(c.translationListeners, fn)
}

func (c *Controller) AddViewListener(fn ViewListener) {
	c.viewListeners = append(c.viewListeners, fn)
}

func (c *Controller) notifyScale(scale float64) {
	for _, fn := range c.scaleListeners {
		fn(scale)
	}
}

func (c *Controller) notifyTranslation(x, y float64) {
	for _, fn := range c.translationListeners {
		fn(x, y)
	}
}

func (c *Controller) notifyView(zoomed bool) {
	for _, fn := range c.viewListeners {
		fn(zoomed)
	}
}

func (c *Controller) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.logger.Debug("phase change", "from", c.phase, "to", p)
	c.phase = p
}
