// Package imshow implements a pipeline node that shows incoming video frames
// in a desktop window.
//
// OpenCV's HighGUI must run on the process main thread on macOS, so the host
// has to call this node from that thread. The node can't enforce it.
package imshow

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"framedisplay/graph"
	"framedisplay/video/frame"
	"framedisplay/video/sink"
)

const (
	// TagVideo carries *frame.ImageFrame. Required.
	TagVideo = "VIDEO"
	// TagVideoPrestream carries a *frame.VideoHeader on the PreStream
	// timestamp. Optional.
	TagVideoPrestream = "VIDEO_PRESTREAM"

	DefaultWindowName    = "FrameDisplay"
	DefaultWaitKeyMillis = 1
)

type Options struct {
	WindowName string

	// WaitKeyMillis is how long each step lets HighGUI process events after
	// a frame is shown. Values below 1 are raised to 1, since 0 blocks
	// until a key is pressed.
	WaitKeyMillis int

	// ResizeToFrame sizes the window to the stream header, or to the first
	// frame when no header arrives, after each surface creation.
	ResizeToFrame bool

	// Open creates the display surface. Defaults to an OpenCV window.
	Open sink.Opener

	Metrics *Metrics
}

// Display is a graph.Node that renders Gray8, SRGB and SRGBA frames.
type Display struct {
	opts Options

	surface sink.Surface
	sized   bool
	header  *frame.VideoHeader
}

// New creates a display node.
func New(opts Options) *Display {
	if opts.WindowName == "" {
		opts.WindowName = DefaultWindowName
	}
	if opts.WaitKeyMillis < 1 {
		opts.WaitKeyMillis = DefaultWaitKeyMillis
	}
	if opts.Open == nil {
		opts.Open = sink.WindowOpener(sink.WindowOptions{})
	}
	return &Display{opts: opts}
}

func (d *Display) Contract(c *graph.Contract) error {
	if !c.HasInput(TagVideo) {
		return fmt.Errorf("%w: input tag %s is required", graph.ErrSetup, TagVideo)
	}
	c.SetInput(TagVideo, (*frame.ImageFrame)(nil))
	if c.HasInput(TagVideoPrestream) {
		c.SetInput(TagVideoPrestream, (*frame.VideoHeader)(nil))
	}
	return nil
}

func (d *Display) Open(ctx *graph.Context) error {
	return d.setup(ctx)
}

func (d *Display) Process(ctx *graph.Context) error {
	if ctx.InputTimestamp() == graph.PreStream {
		if h, ok := ctx.Input(TagVideoPrestream).Value.(*frame.VideoHeader); ok && h != nil {
			d.header = h
			ctx.Log().Infof("Stream header: %v", h)
		}
		return d.setup(ctx)
	}

	p := ctx.Input(TagVideo)
	ts := p.Timestamp
	if p.IsEmpty() {
		ts = ctx.InputTimestamp()
	}
	img, _ := p.Value.(*frame.ImageFrame)
	if img.IsEmpty() {
		d.opts.Metrics.rejected(reasonEmpty)
		return fmt.Errorf("%w: receive empty frame at timestamp %v", graph.ErrInvalidInput, ts)
	}

	mat, err := d.displayMat(img, ts)
	if err != nil {
		return err
	}
	defer mat.Close()

	if d.opts.ResizeToFrame && !d.sized {
		w, h := img.Width, img.Height
		if d.header != nil && d.header.Width > 0 && d.header.Height > 0 {
			w, h = d.header.Width, d.header.Height
		}
		d.surface.Resize(w, h)
		d.sized = true
	}

	d.surface.Show(mat)
	if key := d.surface.WaitKey(d.opts.WaitKeyMillis); key >= 0 {
		ctx.Log().Debugf("Key %d pressed at timestamp %v", key, ts)
	}
	d.opts.Metrics.shown(img.Format.String())
	return nil
}

func (d *Display) Close(ctx *graph.Context) error {
	if d.surface == nil {
		return nil
	}
	err := d.surface.Close()
	d.surface = nil
	return err
}

// displayMat returns img in the surface's channel order. Grayscale frames are
// viewed in place; colour frames are converted to BGR.
func (d *Display) displayMat(img *frame.ImageFrame, ts graph.Timestamp) (gocv.Mat, error) {
	var code gocv.ColorConversionCode
	switch img.Format {
	case frame.Gray8:
	case frame.SRGB:
		code = gocv.ColorRGBToBGR
	case frame.SRGBA:
		code = gocv.ColorRGBAToBGR
	default:
		d.opts.Metrics.rejected(reasonUnsupported)
		return gocv.Mat{}, fmt.Errorf("%w: unsupported image format: %v", graph.ErrUnsupportedFormat, img.Format)
	}
	if err := img.Validate(); err != nil {
		d.opts.Metrics.rejected(reasonMalformed)
		return gocv.Mat{}, fmt.Errorf("%w: malformed frame at timestamp %v: %v", graph.ErrInvalidInput, ts, err)
	}

	src, err := img.MatView()
	if err != nil {
		return gocv.Mat{}, err
	}
	if img.Format == frame.Gray8 {
		return src, nil
	}
	defer src.Close()

	start := time.Now()
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, code)
	d.opts.Metrics.converted(time.Since(start))
	return dst, nil
}

// setup replaces the display surface with a fresh one.
func (d *Display) setup(ctx *graph.Context) error {
	if d.surface != nil {
		if err := d.surface.Close(); err != nil {
			ctx.Log().Warnf("Failed to close previous surface: %v", err)
		}
		d.surface = nil
	}
	s, err := d.opts.Open(d.opts.WindowName)
	if err != nil {
		return fmt.Errorf("open surface %q: %w", d.opts.WindowName, err)
	}
	d.surface = s
	d.sized = false
	d.opts.Metrics.opened()
	return nil
}
