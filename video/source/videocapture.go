package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"framedisplay/graph"
	"framedisplay/util"
	"framedisplay/video/frame"
)

// VideoCapture reads frames from a file, stream URL or camera index through
// OpenCV and emits them as SRGB frames.
type VideoCapture struct {
	URI string

	cap         capture
	pool        *MatPool
	header      *frame.VideoHeader
	stop        *util.Event
	released    *util.Event
	releaseOnce sync.Once
	started     bool
}

// capture is the part of *gocv.VideoCapture used here.
type capture interface {
	Read(m *gocv.Mat) bool
	Get(prop gocv.VideoCaptureProperties) float64
	Close() error
}

// NewVideoCapture opens uri. A numeric uri selects a camera device.
func NewVideoCapture(uri string) (*VideoCapture, error) {
	cap, err := gocv.OpenVideoCapture(uri)
	if err != nil {
		return nil, fmt.Errorf("open video capture %q: %w", uri, err)
	}
	return newVideoCapture(uri, cap), nil
}

func newVideoCapture(uri string, cap capture) *VideoCapture {
	fps := cap.Get(gocv.VideoCaptureFPS)
	h := &frame.VideoHeader{
		Format:    frame.SRGB,
		Width:     int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height:    int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FrameRate: fps,
	}
	if n := cap.Get(gocv.VideoCaptureFrameCount); n > 0 && fps > 0 {
		h.Duration = time.Duration(n / fps * float64(time.Second))
	}
	log.Infof("Opened video capture %v: %v", uri, h)
	return &VideoCapture{
		URI:      uri,
		cap:      cap,
		pool:     NewMatPool(16),
		header:   h,
		stop:     util.NewEvent(),
		released: util.NewEvent(),
	}
}

func (v *VideoCapture) Header() *frame.VideoHeader {
	return v.header
}

func (v *VideoCapture) Steps(ctx context.Context) <-chan graph.Step {
	c := make(chan graph.Step)
	v.started = true
	go func() {
		defer close(c)
		defer v.release()

		if !v.send(ctx, c, graph.NewStep(graph.PreStream, TagVideoPrestream, v.header)) {
			return
		}

		start := time.Now()
		var last graph.Timestamp = -1
		for !v.stop.HasBeenNotified() {
			img, ok := v.read()
			if !ok {
				log.Infof("End of stream %v", v.URI)
				return
			}
			ts := v.timestamp(start)
			if ts <= last {
				// Keep timestamps strictly increasing when the container
				// reports duplicates.
				ts = last + 1
			}
			last = ts
			if !v.send(ctx, c, graph.NewStep(ts, TagVideo, img)) {
				return
			}
		}
	}()
	return c
}

func (v *VideoCapture) send(ctx context.Context, c chan<- graph.Step, s graph.Step) bool {
	select {
	case c <- s:
		return true
	case <-ctx.Done():
		return false
	case <-v.stop.Done():
		return false
	}
}

// read grabs the next frame and converts OpenCV's BGR to SRGB.
func (v *VideoCapture) read() (*frame.ImageFrame, bool) {
	bgr := v.pool.NewMat()
	defer v.pool.ReleaseMat(bgr)
	if ok := v.cap.Read(&bgr); !ok || bgr.Empty() {
		return nil, false
	}

	rgb := v.pool.NewMat()
	defer v.pool.ReleaseMat(rgb)
	gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)

	img, err := frame.FromMat(rgb, frame.SRGB)
	if err != nil {
		log.Errorf("Failed to convert frame from %v: %v", v.URI, err)
		return nil, false
	}
	return img, true
}

// timestamp uses the container position for files. Live sources have no
// duration and no meaningful position, so they use wall time since start.
func (v *VideoCapture) timestamp(start time.Time) graph.Timestamp {
	if v.header.Duration > 0 {
		return graph.Microseconds(int64(v.cap.Get(gocv.VideoCapturePosMsec) * 1000))
	}
	return graph.Microseconds(time.Since(start).Microseconds())
}

func (v *VideoCapture) release() {
	v.releaseOnce.Do(func() {
		v.pool.Close()
		if err := v.cap.Close(); err != nil {
			log.Errorf("Failed to close video capture %v: %v", v.URI, err)
		}
		v.released.Notify()
	})
}

// Close stops a running capture after its current frame and blocks until the
// device is released. It is safe to call more than once.
func (v *VideoCapture) Close() {
	v.stop.Notify()
	if !v.started {
		v.release()
	}
	v.released.Wait()
}
