package sink

import (
	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// WindowOptions control how OpenCV lays out a new window.
type WindowOptions struct {
	// KeepRatio preserves the image aspect ratio when the user resizes.
	KeepRatio  bool
	Fullscreen bool
}

// Window is a Surface backed by an OpenCV HighGUI window. HighGUI calls must
// happen on the main thread on macOS; callers arrange that.
type Window struct {
	name   string
	window *gocv.Window
}

// NewWindow opens a window called name.
func NewWindow(name string, opts WindowOptions) *Window {
	w := &Window{
		name:   name,
		window: gocv.NewWindow(name),
	}
	if opts.KeepRatio {
		w.window.SetWindowProperty(gocv.WindowPropertyAspectRatio, gocv.WindowKeepRatio)
	} else {
		w.window.SetWindowProperty(gocv.WindowPropertyAspectRatio, gocv.WindowFreeRatio)
	}
	if opts.Fullscreen {
		w.window.SetWindowProperty(gocv.WindowPropertyFullscreen, gocv.WindowFullscreen)
	}
	log.Debugf("Opened window %q", name)
	return w
}

// WindowOpener returns an Opener producing OpenCV windows with opts.
func WindowOpener(opts WindowOptions) Opener {
	return func(name string) (Surface, error) {
		return NewWindow(name, opts), nil
	}
}

func (w *Window) Show(img gocv.Mat) {
	w.window.IMShow(img)
}

func (w *Window) WaitKey(delay int) int {
	return w.window.WaitKey(delay)
}

func (w *Window) Resize(width, height int) {
	w.window.ResizeWindow(width, height)
}

func (w *Window) Close() error {
	log.Debugf("Closing window %q", w.name)
	return w.window.Close()
}
