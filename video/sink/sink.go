package sink

import (
	"gocv.io/x/gocv"
)

// Surface is an on-screen window that images are rendered into. Frames shown
// on a surface are 8-bit BGR or single-channel grayscale.
type Surface interface {
	// Show renders img. The surface does not retain img after returning.
	Show(img gocv.Mat)

	// WaitKey services the window's event loop for up to delay milliseconds
	// and returns the pressed key, or -1.
	WaitKey(delay int) int

	// Resize sets the window's content size.
	Resize(width, height int)

	// Close destroys the window.
	Close() error
}

// Opener creates a named Surface. The display node owns the returned handle
// and closes it exactly once.
type Opener func(name string) (Surface, error)
