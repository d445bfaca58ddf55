package input

import (
	"testing"

	"gallery-zoom/zoom"
)

type fakeHost struct {
	w, h        int
	uiX0, uiX1  int // UI strip along the top, y < 40
	screenshots int
}

func (h *fakeHost) ViewportSize() (int, int) { return h.w, h.h }

func (h *fakeHost) IsMouseOver(mx, my int) bool {
	return my < 40 && mx >= h.uiX0 && mx <= h.uiX1
}

func (h *fakeHost) RequestScreenshot() { h.screenshots++ }

type frames []Frame

func (f *frames) Poll() Frame {
	next := (*f)[0]
	*f = (*f)[1:]
	return next
}

func newTestAdapter(t *testing.T) (*Adapter, *zoom.Controller, *fakeHost) {
	t.Helper()
	host := &fakeHost{w: 1000, h: 1000, uiX0: 900, uiX1: 1000}
	ctrl := zoom.NewController(zoom.ViewportFunc(func() (float64, float64) {
		return float64(host.w), float64(host.h)
	}))
	if err := ctrl.Init(2000, 1000); err != nil {
		t.Fatal(err)
	}
	return NewAdapter(host, ctrl, nil), ctrl, host
}

func TestPercent(t *testing.T) {
	cases := []struct {
		mx, my, vw, vh int
		wx, wy         float64
	}{
		{500, 250, 1000, 1000, 50, 25},
		{0, 1000, 1000, 1000, 0, 100},
		{-20, 1200, 1000, 1000, 0, 100},
		{10, 10, 0, 0, 50, 50},
	}
	for _, c := range cases {
		x, y := Percent(c.mx, c.my, c.vw, c.vh)
		if x != c.wx || y != c.wy {
			t.Errorf("Percent(%d, %d, %d, %d) = (%v, %v), want (%v, %v)", c.mx, c.my, c.vw, c.vh, x, y, c.wx, c.wy)
		}
	}
}

func TestIdleIgnoresWheelAndMotion(t *testing.T) {
	a, ctrl, _ := newTestAdapter(t)

	a.Handle(Frame{MouseX: 1000, MouseY: 500, WheelY: 1})
	a.Handle(Frame{MouseX: 0, MouseY: 0, ZoomIn: true})

	if ctrl.Zoomed() {
		t.Fatal("controller zoomed without a toggle")
	}
	if got := ctrl.Transform(); got != (zoom.Transform{Scale: 1}) {
		t.Errorf("Transform = %+v, want defaults", got)
	}
}

func TestClickTogglesAndPans(t *testing.T) {
	a, ctrl, _ := newTestAdapter(t)

	a.Handle(Frame{MouseX: 1000, MouseY: 500, Clicked: true})
	if !ctrl.Zoomed() {
		t.Fatal("click on image did not enter zoom")
	}
	if x := ctrl.Transform().X; x != 0 {
		t.Fatalf("scale 1 should not pan, X = %v", x)
	}

	a.Handle(Frame{MouseX: 1000, MouseY: 500, WheelY: 1})
	a.Handle(Frame{MouseX: 1000, MouseY: 500, WheelY: 1})
	a.Handle(Frame{MouseX: 1000, MouseY: 500, WheelY: 1})
	a.Handle(Frame{MouseX: 1000, MouseY: 500, WheelY: 1})

	tr := ctrl.Transform()
	if tr.Scale <= 2 {
		t.Fatalf("scale = %v, want > 2 after four wheel ticks", tr.Scale)
	}
	if tr.X >= 0 || tr.Y != 0 {
		t.Errorf("translation = (%v, %v), want X < 0 and Y = 0", tr.X, tr.Y)
	}

	a.Handle(Frame{MouseX: 500, MouseY: 500, WheelY: -1})
	if got := ctrl.Transform(); got.Scale >= tr.Scale {
		t.Errorf("wheel down did not zoom out: %v -> %v", tr.Scale, got.Scale)
	}
	if got := ctrl.Transform(); got.X != 0 {
		t.Errorf("pointer at centre should not pan, X = %v", got.X)
	}

	a.Handle(Frame{MouseX: 500, MouseY: 500, Clicked: true})
	if ctrl.Zoomed() {
		t.Fatal("second click did not leave zoom")
	}
	if got := ctrl.Transform(); got != (zoom.Transform{Scale: 1}) {
		t.Errorf("Transform after leaving zoom = %+v, want defaults", got)
	}
}

func TestClickOnUIDoesNotToggle(t *testing.T) {
	a, ctrl, _ := newTestAdapter(t)
	a.Handle(Frame{MouseX: 950, MouseY: 20, Clicked: true})
	if ctrl.Zoomed() {
		t.Fatal("click over UI toggled zoom")
	}
}

func TestKeys(t *testing.T) {
	a, ctrl, host := newTestAdapter(t)

	a.Handle(Frame{ToggleZoom: true, Screenshot: true})
	if !ctrl.Zoomed() {
		t.Fatal("Z did not enter zoom")
	}
	if host.screenshots != 1 {
		t.Errorf("screenshots = %d, want 1", host.screenshots)
	}

	a.Handle(Frame{ZoomIn: true})
	if got := ctrl.Transform().Scale; got != 1.2 {
		t.Errorf("scale = %v, want 1.2", got)
	}
	a.Handle(Frame{ZoomOut: true})
	if got := ctrl.Transform().Scale; got != 1 {
		t.Errorf("scale = %v, want 1", got)
	}

	a.Handle(Frame{ExitZoom: true})
	if ctrl.Zoomed() {
		t.Fatal("Escape did not leave zoom")
	}
	a.Handle(Frame{ExitZoom: true})
	if ctrl.Zoomed() {
		t.Fatal("Escape while idle entered zoom")
	}
}

type countingTarget struct {
	zoomed     bool
	translates int
}

func (c *countingTarget) Zoomed() bool  { return c.zoomed }
func (c *countingTarget) ZoomIn() bool  { return c.zoomed }
func (c *countingTarget) ZoomOut() bool { return c.zoomed }

func (c *countingTarget) ToggleZoom() bool {
	c.zoomed = !c.zoomed
	return c.zoomed
}

func (c *countingTarget) Translate(_, _ float64) bool {
	c.translates++
	return c.zoomed
}

func TestPointerOnlySentOnMotion(t *testing.T) {
	target := &countingTarget{zoomed: true}
	src := &frames{
		{MouseX: 10, MouseY: 10},
		{MouseX: 10, MouseY: 10},
		{MouseX: 11, MouseY: 10},
		{MouseX: 11, MouseY: 10},
	}
	a := NewAdapter(&fakeHost{w: 100, h: 100}, target, src)
	for i := 0; i < 4; i++ {
		a.Update()
	}
	if target.translates != 2 {
		t.Errorf("translates = %d, want 2", target.translates)
	}
}
