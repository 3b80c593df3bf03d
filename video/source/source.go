package source

import (
	"context"

	"framedisplay/graph"
	"framedisplay/video/frame"
)

// Tags a source emits on. They match the display node's inputs.
const (
	TagVideo          = "VIDEO"
	TagVideoPrestream = "VIDEO_PRESTREAM"
)

// Source defines a stream of frames, such as a camera or a video file.
type Source interface {
	// Steps starts producing. The first step is the stream header at
	// graph.PreStream, followed by one step per frame. The channel is
	// closed when the stream ends, ctx is cancelled or Close is called.
	// Frames are owned by the receiver once delivered.
	Steps(ctx context.Context) <-chan graph.Step

	// Header describes the stream as reported when the source was opened.
	Header() *frame.VideoHeader

	// Close disconnects from the capture source and frees up all resources.
	Close()
}
