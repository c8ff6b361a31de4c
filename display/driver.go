package display

import "image"

// Driver is the opaque capability a physical (or simulated) panel exposes.
// Swap pushes a fully composed frame to the hardware; the driver owns all
// signal timing and color handling.
type Driver interface {
	Size() (width, height int)
	Swap(frame *image.RGBA) error
}
