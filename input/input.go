package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Frame holds the polled state of inputs for a single frame.
type Frame struct {
	MouseX, MouseY int
	WheelY         float64
	Clicked        bool // left button just pressed

	ToggleZoom bool
	ExitZoom   bool
	ZoomIn     bool
	ZoomOut    bool
	Screenshot bool
}

// Source produces one Frame per tick.
type Source interface {
	Poll() Frame
}

// Target is the zoom session driven by the adapter.
type Target interface {
	Zoomed() bool
	ZoomIn() bool
	ZoomOut() bool
	Translate(percentX, percentY float64) bool
	ToggleZoom() bool
}

// Host defines the callbacks the adapter needs from the viewer.
type Host interface {
	ViewportSize() (int, int)
	IsMouseOver(mx, my int) bool
	RequestScreenshot()
}

// Adapter forwards validated primitive inputs into a Target. Wheel, zoom keys
// and pointer motion are only interpreted while the target is zoomed.
type Adapter struct {
	host   Host
	target Target
	source Source

	lastMouseX, lastMouseY int
	pointerSent            bool
}

func NewAdapter(h Host, t Target, src Source) *Adapter {
	return &Adapter{host: h, target: t, source: src}
}

// Update polls the source and handles the resulting frame.
func (a *Adapter) Update() {
	a.Handle(a.source.Poll())
}

func (a *Adapter) Handle(f Frame) {
	if f.Screenshot {
		a.host.RequestScreenshot()
	}

	overUI := a.host.IsMouseOver(f.MouseX, f.MouseY)
	if f.ToggleZoom || (f.Clicked && !overUI) || (f.ExitZoom && a.target.Zoomed()) {
		a.target.ToggleZoom()
		a.pointerSent = false
	}

	if !a.target.Zoomed() {
		return
	}

	switch {
	case f.WheelY > 0 || f.ZoomIn:
		a.target.ZoomIn()
	case f.WheelY < 0 || f.ZoomOut:
		a.target.ZoomOut()
	}

	if a.pointerSent && f.MouseX == a.lastMouseX && f.MouseY == a.lastMouseY {
		return
	}
	vw, vh := a.host.ViewportSize()
	px, py := Percent(f.MouseX, f.MouseY, vw, vh)
	a.target.Translate(px, py)
	a.lastMouseX, a.lastMouseY = f.MouseX, f.MouseY
	a.pointerSent = true
}

// Percent converts a cursor position into percentages of the viewport,
// clamped to [0, 100]. An empty viewport reports the centre.
func Percent(mx, my, vw, vh int) (float64, float64) {
	return axisPercent(mx, vw), axisPercent(my, vh)
}

func axisPercent(v, size int) float64 {
	if size <= 0 {
		return 50
	}
	p := float64(v) * 100 / float64(size)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// EbitenSource polls ebiten's global input state.
type EbitenSource struct{}

func (EbitenSource) Poll() Frame {
	mx, my := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	return Frame{
		MouseX:     mx,
		MouseY:     my,
		WheelY:     wheelY,
		Clicked:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ToggleZoom: inpututil.IsKeyJustPressed(ebiten.KeyZ),
		ExitZoom:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ZoomIn:     inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd),
		ZoomOut:    inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract),
		Screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}
}
