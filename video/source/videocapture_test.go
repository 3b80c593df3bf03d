package source

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"framedisplay/graph"
	"framedisplay/video/frame"
)

// fakeCapture is an endless live source of 2x2 BGR frames.
type fakeCapture struct {
	closes int32
}

func (f *fakeCapture) Read(m *gocv.Mat) bool {
	if atomic.LoadInt32(&f.closes) > 0 {
		return false
	}
	src := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer src.Close()
	src.CopyTo(m)
	return true
}

func (f *fakeCapture) Get(prop gocv.VideoCaptureProperties) float64 {
	switch prop {
	case gocv.VideoCaptureFrameWidth, gocv.VideoCaptureFrameHeight:
		return 2
	}
	return 0
}

func (f *fakeCapture) Close() error {
	atomic.AddInt32(&f.closes, 1)
	return nil
}

func TestVideoCaptureSteps(t *testing.T) {
	fc := &fakeCapture{}
	v := newVideoCapture("fake", fc)
	defer v.Close()

	steps := v.Steps(context.Background())

	s := <-steps
	assert.Equal(t, graph.PreStream, s.Timestamp)
	h, ok := s.Inputs[TagVideoPrestream].Value.(*frame.VideoHeader)
	require.True(t, ok)
	assert.Equal(t, 2, h.Width)

	var last graph.Timestamp = -1
	for i := 0; i < 3; i++ {
		s = <-steps
		assert.Greater(t, int64(s.Timestamp), int64(last))
		last = s.Timestamp
		img, ok := s.Inputs[TagVideo].Value.(*frame.ImageFrame)
		require.True(t, ok)
		assert.Equal(t, frame.SRGB, img.Format)
		assert.Equal(t, 2, img.Width)
	}
}

func TestVideoCaptureCloseWaitsForRelease(t *testing.T) {
	fc := &fakeCapture{}
	v := newVideoCapture("fake", fc)
	steps := v.Steps(context.Background())
	<-steps

	// The capture goroutine is now blocked handing over a frame.
	v.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fc.closes), "device released before Close returns")

	select {
	case <-drain(steps):
	case <-time.After(5 * time.Second):
		t.Fatal("steps channel not closed")
	}

	v.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fc.closes))
}

func TestVideoCaptureCloseWithoutSteps(t *testing.T) {
	fc := &fakeCapture{}
	v := newVideoCapture("fake", fc)

	v.Close()
	v.Close()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fc.closes))
}

func drain(steps <-chan graph.Step) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for range steps {
		}
		close(done)
	}()
	return done
}
