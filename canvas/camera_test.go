package canvas

import (
	"math"
	"testing"

	"gallery-zoom/zoom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestCameraGeoMFitsImage(t *testing.T) {
	cam := NewCamera()

	x0, y0, x1, y1 := ImageBounds(cam, 2000, 1000, 1000, 1000)
	if !near(x0, 0) || !near(y0, 250) || !near(x1, 1000) || !near(y1, 750) {
		t.Fatalf("bounds = (%v, %v)-(%v, %v), want (0, 250)-(1000, 750)", x0, y0, x1, y1)
	}
}

func TestCameraFullPanReachesEdge(t *testing.T) {
	cam := NewCamera()
	cam.SetScale(2)
	cam.SetTranslation(-25, 0)

	x0, _, x1, _ := ImageBounds(cam, 2000, 1000, 1000, 1000)
	if !near(x1, 1000) || !near(x0, -1000) {
		t.Fatalf("x bounds = (%v, %v), want (-1000, 1000)", x0, x1)
	}

	ix, iy := cam.ScreenToImage(500, 500, 2000, 1000, 1000, 1000)
	if !near(ix, 1500) || !near(iy, 500) {
		t.Errorf("screen centre maps to image (%v, %v), want (1500, 500)", ix, iy)
	}
	sx, sy := cam.ImageToScreen(ix, iy, 2000, 1000, 1000, 1000)
	if !near(sx, 500) || !near(sy, 500) {
		t.Errorf("round trip = (%v, %v), want (500, 500)", sx, sy)
	}
}

func TestCameraFollowsController(t *testing.T) {
	ctrl := zoom.NewController(zoom.ViewportFunc(func() (float64, float64) { return 1000, 1000 }))
	cam := NewCamera()
	cam.Attach(ctrl)

	if err := ctrl.Init(2000, 1000); err != nil {
		t.Fatal(err)
	}
	ctrl.ToggleZoom()
	for i := 0; i < 4; i++ {
		ctrl.ZoomIn()
	}
	ctrl.Translate(100, 50)

	tr := ctrl.Transform()
	if cam.Scale != tr.Scale || cam.X != tr.X || cam.Y != tr.Y {
		t.Fatalf("camera = %+v, controller = %+v", *cam, tr)
	}

	// Fully panned right: the image's right edge sits on the viewport edge.
	_, _, x1, _ := ImageBounds(cam, 2000, 1000, 1000, 1000)
	if !near(x1, 1000) {
		t.Errorf("right edge at %v, want 1000", x1)
	}

	ctrl.ToggleZoom()
	if cam.Scale != 1 || cam.X != 0 || cam.Y != 0 {
		t.Errorf("camera not cleared after leaving zoom: %+v", *cam)
	}
}
