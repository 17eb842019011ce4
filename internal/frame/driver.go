package frame

import (
	"github.com/charmbracelet/log"

	"github.com/junsooki/photoframe/internal/decoder"
	"github.com/junsooki/photoframe/internal/display"
	"github.com/junsooki/photoframe/internal/mailbox"
)

// Driver promotes pending photos from the mailbox to the surface, one
// frame at a time. It must only be used from the render goroutine.
type Driver struct {
	box     *mailbox.Mailbox
	dec     decoder.Decoder
	surface display.Surface
	logger  *log.Logger

	swaps        uint64
	decodeErrors uint64
}

func New(box *mailbox.Mailbox, dec decoder.Decoder, surface display.Surface, logger *log.Logger) *Driver {
	return &Driver{
		box:     box,
		dec:     dec,
		surface: surface,
		logger:  logger.With("component", "frame"),
	}
}

// Tick runs one frame. It reports whether a new photo was bound.
func (d *Driver) Tick() bool {
	swapped := d.swap()
	d.surface.DrawFrame()
	return swapped
}

// Run ticks while running reports true.
func (d *Driver) Run(running func() bool) {
	d.logger.Info("entering main display loop")
	for running() {
		d.Tick()
	}
	d.logger.Info("display loop stopped", "swaps", d.swaps, "decode_errors", d.decodeErrors)
}

func (d *Driver) swap() bool {
	payload, ok := d.box.Take()
	if !ok {
		return false
	}

	img, err := d.dec.Decode(payload)
	if err != nil {
		// A bad photo is skipped; the current one stays on screen.
		d.decodeErrors++
		d.logger.Error("decode photo, keeping current display", "err", err)
		return false
	}

	d.logger.Info("loading new image into texture", "size", img.Bounds().Size())
	d.surface.Bind(img)
	d.swaps++
	return true
}
