package zoom

import (
	"errors"
	"math"
	"testing"
)

type fixedViewport struct{ w, h float64 }

func (v *fixedViewport) Size() (float64, float64) { return v.w, v.h }

func newTestState(t *testing.T, w, h float64, vp Viewport) *State {
	t.Helper()
	s, err := NewState(w, h, vp, ReplayLastPointer)
	if err != nil {
		t.Fatalf("NewState(%v, %v): %v", w, h, err)
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewStateRejectsBadDimensions(t *testing.T) {
	vp := &fixedViewport{1000, 1000}
	for _, dims := range [][2]float64{{0, 100}, {100, 0}, {-1, 100}, {math.NaN(), 100}, {math.Inf(1), 100}} {
		if _, err := NewState(dims[0], dims[1], vp, ReplayLastPointer); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewState(%v, %v) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestSetScaleClamps(t *testing.T) {
	s := newTestState(t, 2000, 1000, &fixedViewport{1000, 1000})

	cases := []struct {
		in, want float64
	}{
		{0, 1},
		{-5, 1},
		{0.5, 1},
		{1, 1},
		{7.5, 7.5},
		{50, 50},
		{1000, 50},
		{math.Inf(1), 50},
		{math.NaN(), 1},
	}
	for _, c := range cases {
		got := s.SetScale(c.in)
		if got.Scale != c.want || s.Scale() != c.want {
			t.Errorf("SetScale(%v) = %v, want %v", c.in, got.Scale, c.want)
		}
	}
}

func TestSetTranslationClamps(t *testing.T) {
	s := newTestState(t, 100, 100, &fixedViewport{100, 100})

	cases := []struct {
		in, want float64
	}{
		{60, 50},
		{-60, -50},
		{50, 50},
		{-50, -50},
		{12.5, 12.5},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		s.SetXTranslation(c.in)
		s.SetYTranslation(c.in)
		x, y := s.Translation()
		if x != c.want || y != c.want {
			t.Errorf("SetX/YTranslation(%v) = (%v, %v), want %v", c.in, x, y, c.want)
		}
	}
}

func TestMapPercent(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{50, 0},
		{80, 100},
		{90, 100},
		{100, 100},
		{20, -100},
		{0, -100},
		{65, 50},
		{35, -50},
		{-40, -100},
		{250, 100},
	}
	for _, c := range cases {
		if got := MapPercent(c.in); !almostEqual(got, c.want) {
			t.Errorf("MapPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMapPercentSaturates(t *testing.T) {
	want := MapPercent(80)
	for k := 30.0; k <= 200; k += 7.5 {
		if got := MapPercent(50 + k); got != want {
			t.Fatalf("MapPercent(%v) = %v, want %v", 50+k, got, want)
		}
	}
}

func TestMapPercentIsOddAroundCenter(t *testing.T) {
	for d := 0.0; d <= 60; d += 0.25 {
		if a, b := MapPercent(50+d), -MapPercent(50-d); a != b {
			t.Fatalf("MapPercent(50+%v) = %v, -MapPercent(50-%v) = %v", d, a, d, b)
		}
	}
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		name         string
		nw, nh       float64
		vw, vh       float64
		wantW, wantH float64
	}{
		{"wide image width bound", 2000, 1000, 1000, 1000, 1000, 500},
		{"tall image height bound", 1000, 4000, 1000, 1000, 250, 1000},
		{"exact aspect", 1600, 900, 800, 450, 800, 450},
		{"small image keeps natural size", 200, 100, 1000, 1000, 200, 100},
		{"small in one dimension only", 900, 100, 1000, 100, 900, 100},
	}
	for _, c := range cases {
		w, h := FitSize(c.nw, c.nh, c.vw, c.vh)
		if !almostEqual(w, c.wantW) || !almostEqual(h, c.wantH) {
			t.Errorf("%s: FitSize = (%v, %v), want (%v, %v)", c.name, w, h, c.wantW, c.wantH)
		}
	}
}

func TestResetStateIsIdempotent(t *testing.T) {
	s := newTestState(t, 2000, 1000, &fixedViewport{1000, 1000})
	s.SetScale(4)
	s.Translate(90, 10)

	s.ResetState()
	once := *s
	s.ResetState()

	if *s != once {
		t.Fatalf("second ResetState changed state: %+v -> %+v", once, *s)
	}
	if s.Scale() != 1 {
		t.Errorf("scale = %v, want 1", s.Scale())
	}
	if x, y := s.Translation(); x != 0 || y != 0 {
		t.Errorf("translation = (%v, %v), want (0, 0)", x, y)
	}
	if x, y := s.LastPointer(); x != 0 || y != 0 {
		t.Errorf("last pointer = (%v, %v), want (0, 0)", x, y)
	}
	if w, h := s.NaturalSize(); w != 2000 || h != 1000 {
		t.Errorf("natural size = (%v, %v), want (2000, 1000)", w, h)
	}
}

func TestSetScaleReplaysLastPointer(t *testing.T) {
	vp := &fixedViewport{1000, 1000}

	replayed := newTestState(t, 2000, 1000, vp)
	replayed.Translate(70, 30)
	got := replayed.SetScale(3)

	explicit := newTestState(t, 2000, 1000, vp)
	explicit.SetScale(3)
	want := explicit.Translate(70, 30)

	if got != want {
		t.Fatalf("SetScale after Translate(70, 30) = %+v, explicit Translate = %+v", got, want)
	}
	if got.X == 0 || got.Y == 0 {
		t.Fatalf("expected a non-zero translation on both axes, got %+v", got)
	}
	if got.X >= 0 || got.Y <= 0 {
		t.Errorf("pointer right/up should pan left/down, got %+v", got)
	}
}

func TestSmallImageNeverPans(t *testing.T) {
	s := newTestState(t, 200, 100, &fixedViewport{1000, 1000})
	for _, p := range [][2]float64{{0, 0}, {100, 100}, {80, 20}, {50, 50}} {
		got := s.Translate(p[0], p[1])
		if got.X != 0 || got.Y != 0 {
			t.Errorf("Translate(%v, %v) = %+v, want zero translation", p[0], p[1], got)
		}
	}
}

func TestWideImageAtFarRight(t *testing.T) {
	s := newTestState(t, 2000, 1000, &fixedViewport{1000, 1000})

	// At scale 1 the fitted image is exactly as wide as the viewport.
	if got := s.Translate(100, 50); got.X != 0 || got.Y != 0 {
		t.Fatalf("scale 1: Translate(100, 50) = %+v, want no pan", got)
	}

	s.SetScale(2)
	got := s.Translate(100, 50)
	if got.Y != 0 {
		t.Errorf("Y = %v, want 0", got.Y)
	}
	if got.X != -25 {
		t.Errorf("X = %v, want -25", got.X)
	}
	if edge := s.Translate(80, 50); edge.X != got.X {
		t.Errorf("saturation boundary X = %v, want %v", edge.X, got.X)
	}
}

func TestTranslateReadsViewportEachTime(t *testing.T) {
	vp := &fixedViewport{1000, 1000}
	s := newTestState(t, 2000, 1000, vp)
	s.SetScale(2)

	before := s.Translate(100, 50)
	vp.w = 500
	after := s.Translate(100, 50)

	// Viewport 500x1000: fit 500x250, displayed 1000x500, overflow 500.
	if before.X != -25 || after.X != -25 {
		t.Fatalf("X before/after = %v/%v, want -25/-25", before.X, after.X)
	}
	vp.w, vp.h = 4000, 4000
	if got := s.Translate(100, 50); got.X != 0 {
		t.Errorf("large viewport X = %v, want 0", got.X)
	}
}

func TestReplayCenterPolicy(t *testing.T) {
	s, err := NewState(2000, 1000, &fixedViewport{1000, 1000}, ReplayCenter)
	if err != nil {
		t.Fatal(err)
	}

	s.Translate(70, 30)
	fresh := s.SetScale(3)
	if fresh.X == 0 {
		t.Fatalf("fresh pointer should be replayed, got %+v", fresh)
	}

	stale := s.SetScale(4)
	if stale.X != 0 || stale.Y != 0 {
		t.Errorf("stale pointer should fall back to centre, got %+v", stale)
	}
	if x, y := s.LastPointer(); x != 70 || y != 30 {
		t.Errorf("last pointer = (%v, %v), want (70, 30)", x, y)
	}
}
