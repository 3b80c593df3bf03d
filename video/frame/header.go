package frame

import (
	"fmt"
	"time"
)

// VideoHeader describes a video stream. Producers send it once on the
// pre-stream timestamp.
type VideoHeader struct {
	Format    Format
	Width     int
	Height    int
	FrameRate float64
	Duration  time.Duration
}

func (h *VideoHeader) String() string {
	return fmt.Sprintf("%dx%d %v @ %.2f fps (%v)", h.Width, h.Height, h.Format, h.FrameRate, h.Duration)
}
