package display

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Options configures an EbitenDisplay.
type Options struct {
	Title      string
	Fullscreen bool
	Background color.Color
	FPS        int
}

// EbitenDisplay shows the bound photo stretched over the whole output.
// Bind and DrawFrame must be called from the game loop (the tick passed to Run).
type EbitenDisplay struct {
	opts Options
	tick func()

	texture *ebiten.Image
	canvas  *ebiten.Image

	screenW int
	screenH int

	closed atomic.Bool
}

// NewEbitenDisplay creates an Ebitengine-based display.
func NewEbitenDisplay(opts Options) *EbitenDisplay {
	if opts.Background == nil {
		opts.Background = color.RGBA{G: 0xff, A: 0xff}
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	return &EbitenDisplay{
		opts:    opts,
		screenW: 1280,
		screenH: 720,
	}
}

// Run starts the Ebitengine game loop, calling tick once per frame at the
// configured rate. Must be called from the main goroutine.
func (d *EbitenDisplay) Run(tick func()) error {
	d.tick = tick
	ebiten.SetWindowSize(d.screenW, d.screenH)
	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(d.opts.Fullscreen)
	if d.opts.Fullscreen {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	ebiten.SetTPS(d.opts.FPS)

	err := ebiten.RunGame(d)
	d.closed.Store(true)
	return err
}

// Running reports whether the loop should keep going.
func (d *EbitenDisplay) Running() bool {
	return !d.closed.Load()
}

// Close asks the game loop to stop after the current frame. Safe to call
// from any goroutine.
func (d *EbitenDisplay) Close() {
	d.closed.Store(true)
}

// Bind replaces the active texture.
func (d *EbitenDisplay) Bind(img image.Image) {
	if d.texture != nil {
		d.texture.Deallocate()
	}
	d.texture = ebiten.NewImageFromImage(img)
}

// DrawFrame renders the background and the texture into the frame canvas.
func (d *EbitenDisplay) DrawFrame() {
	if d.canvas == nil ||
		d.canvas.Bounds().Dx() != d.screenW ||
		d.canvas.Bounds().Dy() != d.screenH {
		if d.canvas != nil {
			d.canvas.Deallocate()
		}
		d.canvas = ebiten.NewImage(d.screenW, d.screenH)
	}

	d.canvas.Fill(d.opts.Background)
	if d.texture == nil {
		return
	}

	tw, th := d.texture.Bounds().Dx(), d.texture.Bounds().Dy()
	sx, sy := stretchScale(float64(d.screenW), float64(d.screenH), float64(tw), float64(th))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.Filter = ebiten.FilterLinear
	d.canvas.DrawImage(d.texture, op)
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.Close()
	}
	if !d.Running() {
		return ebiten.Termination
	}
	if d.tick != nil {
		d.tick()
	}
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	if d.canvas == nil {
		screen.Fill(d.opts.Background)
		return
	}
	screen.DrawImage(d.canvas, nil)
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.screenW, d.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// stretchScale returns the per-axis scale that makes a frame cover the view.
func stretchScale(viewW, viewH, frameW, frameH float64) (sx, sy float64) {
	if frameW == 0 || frameH == 0 {
		return 1, 1
	}
	return viewW / frameW, viewH / frameH
}
