package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"

	"gallery-zoom/canvas"
	"gallery-zoom/config"
	"gallery-zoom/input"
	"gallery-zoom/service"
	"gallery-zoom/ui"
	"gallery-zoom/watch"
	"gallery-zoom/zoom"
)

// imageResult holds the result of a background image load.
type imageResult struct {
	img  image.Image
	info *service.ImageInfo
	err  error
}

// Viewer is the ebiten game showing one image with pointer-driven pan and zoom.
type Viewer struct {
	path         string
	image        *ebiten.Image
	info         *service.ImageInfo
	screenWidth  int
	screenHeight int

	// Sub-systems
	ctrl   *zoom.Controller
	camera *canvas.Camera
	input  *input.Adapter
	ui     *ui.UISystem
	images *service.ImageService

	watcher *watch.Watcher
	reloads chan imageResult

	face   font.Face
	logger *slog.Logger

	screenshotRequested bool
}

func newViewer(cfg *config.Config, logger *slog.Logger) *Viewer {
	v := &Viewer{
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
		camera:       canvas.NewCamera(),
		images:       service.NewImageService(),
		reloads:      make(chan imageResult, 1),
		logger:       logger,
	}

	opts := append(cfg.ZoomOptions(), zoom.WithLogger(logger))
	v.ctrl = zoom.NewController(zoom.ViewportFunc(v.viewportSize), opts...)
	v.camera.Attach(v.ctrl)
	v.ctrl.AddViewListener(v.onViewChange)

	v.ui = ui.NewUISystem(v.fontFace, v.ViewportSize, ui.Callbacks{
		OnToggleZoom: func() { v.ctrl.ToggleZoom() },
		OnZoomIn:     func() { v.ctrl.ZoomIn() },
		OnZoomOut:    func() { v.ctrl.ZoomOut() },
		IsZoomed:     v.ctrl.Zoomed,
	}, DrawTextLines)
	v.input = input.NewAdapter(v, v.ctrl, input.EbitenSource{})
	return v
}

// NewViewer loads the image at path and prepares a viewer for it.
func NewViewer(cfg *config.Config, path string, logger *slog.Logger) (*Viewer, error) {
	v := newViewer(cfg, logger)
	v.face = LoadUIFont(cfg.Font.Path, cfg.Font.Size, logger)

	img, info, err := v.images.Decode(path)
	if err != nil {
		return nil, err
	}
	v.path = path
	if err := v.show(img, info); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := watch.New(path, logger)
		if err != nil {
			logger.Warn("not watching image", "path", path, "err", err)
		} else {
			v.watcher = w
		}
	}
	return v, nil
}

// show swaps in a decoded image and re-arms the zoom session for it.
func (v *Viewer) show(img image.Image, info *service.ImageInfo) error {
	if err := v.arm(info); err != nil {
		return err
	}
	old := v.image
	v.image = ebiten.NewImageFromImage(img)
	if old != nil {
		old.Deallocate()
	}
	return nil
}

func (v *Viewer) arm(info *service.ImageInfo) error {
	if err := v.ctrl.Init(float64(info.Width), float64(info.Height)); err != nil {
		return fmt.Errorf("arming zoom for %s: %w", info.Path, err)
	}
	v.info = info
	v.ui.Debug.Clear()
	v.logger.Info("image ready", "path", info.Path, "width", info.Width, "height", info.Height)
	return nil
}

func (v *Viewer) Close() error {
	if v.watcher != nil {
		return v.watcher.Close()
	}
	return nil
}

func (v *Viewer) Update() error {
	v.pollReload()
	v.ui.Update()
	v.input.Update()
	return nil
}

// pollReload starts a background decode when the watched file changed and
// applies a finished one. ebiten images are only created here, on the game
// goroutine.
func (v *Viewer) pollReload() {
	if v.watcher != nil {
		if ev, ok := v.watcher.Poll(); ok {
			if ev.Removed {
				v.ui.Debug.SetError("image removed:\n" + ev.Path)
			} else {
				go func(path string) {
					img, info, err := v.images.Decode(path)
					v.reloads <- imageResult{img: img, info: info, err: err}
				}(ev.Path)
			}
		}
	}

	select {
	case res := <-v.reloads:
		if res.err != nil {
			v.logger.Warn("reload failed", "err", res.err)
			v.ui.Debug.SetError("reload failed")
			return
		}
		if err := v.show(res.img, res.info); err != nil {
			v.ui.Debug.SetError(err.Error())
		}
	default:
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	nw, nh := v.ctrl.NaturalSize()
	canvas.DrawBackdrop(v.camera, screen, nw, nh, ColorBackground, ColorFrame)

	if v.image != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM = v.camera.GeoM(nw, nh, float64(v.screenWidth), float64(v.screenHeight))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.image, op)
	}

	t := v.ctrl.Transform()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"Mode: %s  Scale: %.2f  Pan: (%.1f%%, %.1f%%)\n"+
			"Click or Z: toggle zoom  Wheel or +/-: zoom  Esc: exit zoom",
		v.ctrl.Phase(), t.Scale, t.X, t.Y,
	), HUDMargin, HUDMargin)

	if v.info != nil {
		v.ui.Debug.SetInfo(v.info.Lines()...)
	}
	v.ui.Draw(screen)

	// --- Save Screenshot ---
	if v.screenshotRequested {
		v.screenshotRequested = false
		v.saveScreenshot(screen)
	}
}

func (v *Viewer) saveScreenshot(screen *ebiten.Image) {
	f, err := os.Create(ScreenshotFile)
	if err != nil {
		v.logger.Error("screenshot", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, screen); err != nil {
		v.logger.Error("screenshot", "err", err)
		return
	}
	v.logger.Info("screenshot saved", "file", ScreenshotFile)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenWidth = outsideWidth
	v.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

func (v *Viewer) onViewChange(zoomed bool) {
	v.logger.Debug("zoom view", "zoomed", zoomed)
	if zoomed {
		ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// --- input.Host ---

func (v *Viewer) ViewportSize() (int, int) { return v.screenWidth, v.screenHeight }

func (v *Viewer) IsMouseOver(mx, my int) bool { return v.ui.IsMouseOver(mx, my) }

func (v *Viewer) RequestScreenshot() { v.screenshotRequested = true }

func (v *Viewer) viewportSize() (float64, float64) {
	return float64(v.screenWidth), float64(v.screenHeight)
}

func (v *Viewer) fontFace() font.Face { return v.face }
