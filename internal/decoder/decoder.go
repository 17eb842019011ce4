package decoder

import (
	"errors"
	"image"
)

// ErrEmpty is returned when there are no bytes to decode.
var ErrEmpty = errors.New("decoder: empty payload")

// Decoder decodes encoded photo bytes into an image.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}
