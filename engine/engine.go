// Package engine runs Starlark scenarios against a zoom controller without a
// window, recording every state change.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"gallery-zoom/zoom"
)

// ErrNoImage is returned by scenario calls that need an image before init().
var ErrNoImage = errors.New("no image: call init(width, height) first")

// Step is one recorded scenario call and the state it left behind.
type Step struct {
	Call          string  `yaml:"call"`
	Scale         float64 `yaml:"scale"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Zoomed        bool    `yaml:"zoomed"`
	Notifications int     `yaml:"notifications"`
}

type Viewport struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (v *Viewport) Size() (float64, float64) { return v.W, v.H }

// Trace is the outcome of a scenario run.
type Trace struct {
	Script   string   `yaml:"script"`
	Viewport Viewport `yaml:"viewport"`
	Steps    []Step   `yaml:"steps"`
	Output   []string `yaml:"output,omitempty"`
}

// Scenario drives a Controller from a Starlark script.
type Scenario struct {
	ctrl     *zoom.Controller
	viewport *Viewport
	trace    *Trace
	logger   *slog.Logger

	notified int
}

// NewScenario prepares a run with a 1000x1000 viewport; scripts may change it
// with viewport(w, h).
func NewScenario(name string, logger *slog.Logger, opts ...zoom.Option) *Scenario {
	if logger == nil {
		logger = slog.Default()
	}
	vp := &Viewport{W: 1000, H: 1000}
	s := &Scenario{
		viewport: vp,
		trace:    &Trace{Script: name},
		logger:   logger.With("scenario", name),
	}
	s.ctrl = zoom.NewController(vp, append(opts, zoom.WithLogger(logger))...)
	s.ctrl.AddScaleListener(func(float64) { s.notified++ })
	s.ctrl.AddTranslationListener(func(float64, float64) { s.notified++ })
	s.ctrl.AddViewListener(func(bool) { s.notified++ })
	return s
}

func (s *Scenario) Controller() *zoom.Controller { return s.ctrl }

// Run executes src and returns the recorded trace. A script error still
// returns the steps recorded before it.
func (s *Scenario) Run(src string) (*Trace, error) {
	thread := &starlark.Thread{
		Name: s.trace.Script,
		Print: func(_ *starlark.Thread, msg string) {
			s.trace.Output = append(s.trace.Output, msg)
		},
	}

	_, err := starlark.ExecFile(thread, s.trace.Script, src, s.builtins())
	s.trace.Viewport = *s.viewport
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			s.logger.Debug("scenario failed", "backtrace", evalErr.Backtrace())
		}
		return s.trace, fmt.Errorf("running %s: %w", s.trace.Script, err)
	}
	s.logger.Debug("scenario finished", "steps", len(s.trace.Steps))
	return s.trace, nil
}

// Run is a shorthand for NewScenario(name, nil, opts...).Run(src).
func Run(name, src string, opts ...zoom.Option) (*Trace, error) {
	return NewScenario(name, nil, opts...).Run(src)
}

func (s *Scenario) builtins() starlark.StringDict {
	return starlark.StringDict{
		"viewport":  starlark.NewBuiltin("viewport", s.setViewport),
		"init":      starlark.NewBuiltin("init", s.initImage),
		"toggle":    starlark.NewBuiltin("toggle", s.simple(s.ctrl.ToggleZoom)),
		"zoom_in":   starlark.NewBuiltin("zoom_in", s.simple(s.ctrl.ZoomIn)),
		"zoom_out":  starlark.NewBuiltin("zoom_out", s.simple(s.ctrl.ZoomOut)),
		"translate": starlark.NewBuiltin("translate", s.translate),
		"reset":     starlark.NewBuiltin("reset", s.simple(func() bool { s.ctrl.Reset(); return true })),
		"state":     starlark.NewBuiltin("state", s.state),
	}
}

type builtinFunc func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

// simple wraps a no-argument controller call that reports whether it applied.
func (s *Scenario) simple(call func() bool) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		if !s.ctrl.Ready() {
			return nil, fmt.Errorf("%s: %w", b.Name(), ErrNoImage)
		}
		applied := s.record(b.Name(), call)
		return starlark.Bool(applied), nil
	}
}

func (s *Scenario) translate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	x, y, err := unpackPair(b, args, kwargs, "x", "y")
	if err != nil {
		return nil, err
	}
	if !s.ctrl.Ready() {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrNoImage)
	}
	call := fmt.Sprintf("translate(%g, %g)", x, y)
	return starlark.Bool(s.record(call, func() bool { return s.ctrl.Translate(x, y) })), nil
}

func (s *Scenario) initImage(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	w, h, err := unpackPair(b, args, kwargs, "width", "height")
	if err != nil {
		return nil, err
	}
	var initErr error
	s.record(fmt.Sprintf("init(%g, %g)", w, h), func() bool {
		initErr = s.ctrl.Init(w, h)
		return initErr == nil
	})
	if initErr != nil {
		return nil, initErr
	}
	return starlark.None, nil
}

func (s *Scenario) setViewport(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	w, h, err := unpackPair(b, args, kwargs, "width", "height")
	if err != nil {
		return nil, err
	}
	s.viewport.W, s.viewport.H = w, h
	return starlark.None, nil
}

func (s *Scenario) state(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	t := s.ctrl.Transform()
	fields := []struct {
		key string
		val starlark.Value
	}{
		{"scale", starlark.Float(t.Scale)},
		{"x", starlark.Float(t.X)},
		{"y", starlark.Float(t.Y)},
		{"zoomed", starlark.Bool(s.ctrl.Zoomed())},
		{"phase", starlark.String(s.ctrl.Phase().String())},
	}
	d := starlark.NewDict(len(fields))
	for _, f := range fields {
		if err := d.SetKey(starlark.String(f.key), f.val); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// record runs call and appends the resulting state to the trace.
func (s *Scenario) record(name string, call func() bool) bool {
	before := s.notified
	applied := call()
	t := s.ctrl.Transform()
	s.trace.Steps = append(s.trace.Steps, Step{
		Call:          name,
		Scale:         t.Scale,
		X:             t.X,
		Y:             t.Y,
		Zoomed:        s.ctrl.Zoomed(),
		Notifications: s.notified - before,
	})
	return applied
}

func unpackPair(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, n1, n2 string) (float64, float64, error) {
	var v1, v2 starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, n1, &v1, n2, &v2); err != nil {
		return 0, 0, err
	}
	f1, err := starlark.AsFloat(v1)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %s: %w", b.Name(), n1, err)
	}
	f2, err := starlark.AsFloat(v2)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %s: %w", b.Name(), n2, err)
	}
	return f1, f2, nil
}
