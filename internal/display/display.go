package display

import "image"

// Surface is a fullscreen output holding one bound photo.
type Surface interface {
	// Bind makes img the active texture, releasing the previous one.
	Bind(img image.Image)
	// DrawFrame renders one frame: the background, then the bound texture.
	DrawFrame()
}
