package zoom

import (
	"fmt"
	"log/slog"
	"strings"
)

// DefaultZoomStep is the factor applied by one ZoomIn or ZoomOut.
const DefaultZoomStep = 1.2

// ReplayPolicy selects which pointer position SetScale uses to re-derive the
// translation.
type ReplayPolicy int

const (
	// ReplayLastPointer always replays the most recent pointer sample.
	ReplayLastPointer ReplayPolicy = iota
	// ReplayCenter replays a centred pointer when no pointer sample arrived
	// since the previous scale change.
	ReplayCenter
)

func (p ReplayPolicy) String() string {
	switch p {
	case ReplayLastPointer:
		return "last"
	case ReplayCenter:
		return "center"
	}
	return fmt.Sprintf("ReplayPolicy(%d)", int(p))
}

// ParseReplayPolicy accepts the names produced by ReplayPolicy.String.
func ParseReplayPolicy(s string) (ReplayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return ReplayLastPointer, nil
	case "center", "centre":
		return ReplayCenter, nil
	}
	return ReplayLastPointer, fmt.Errorf("invalid replay policy %q: must be one of last, center", s)
}

// Options configures a Controller.
type Options struct {
	ZoomStep float64
	Replay   ReplayPolicy
	Logger   *slog.Logger
}

type Option func(*Options)

func WithZoomStep(step float64) Option {
	return func(o *Options) {
		if step > 1 {
			o.ZoomStep = step
		}
	}
}

func WithReplay(p ReplayPolicy) Option {
	return func(o *Options) { o.Replay = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func defaultOptions() Options {
	return Options{
		ZoomStep: DefaultZoomStep,
		Replay:   ReplayLastPointer,
		Logger:   slog.Default(),
	}
}
