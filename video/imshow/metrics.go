package imshow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Error reasons reported by Metrics.
const (
	reasonEmpty       = "empty"
	reasonUnsupported = "unsupported"
	reasonMalformed   = "malformed"
)

// Metrics tracks what the display node renders. A nil *Metrics records
// nothing.
type Metrics struct {
	framesShown  *prometheus.CounterVec
	frameErrors  *prometheus.CounterVec
	surfaceOpens prometheus.Counter
	convert      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		framesShown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framedisplay_frames_shown_total",
			Help: "Frames rendered to the display surface, by pixel format.",
		}, []string{"format"}),
		frameErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framedisplay_frame_errors_total",
			Help: "Frames rejected by the display node, by reason.",
		}, []string{"reason"}),
		surfaceOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "framedisplay_surface_opens_total",
			Help: "Display surfaces created.",
		}),
		convert: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "framedisplay_convert_seconds",
			Help:    "Time spent converting a frame to display channel order.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}
	for _, c := range []prometheus.Collector{m.framesShown, m.frameErrors, m.surfaceOpens, m.convert} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) shown(format string) {
	if m == nil {
		return
	}
	m.framesShown.WithLabelValues(format).Inc()
}

func (m *Metrics) rejected(reason string) {
	if m == nil {
		return
	}
	m.frameErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) opened() {
	if m == nil {
		return
	}
	m.surfaceOpens.Inc()
}

func (m *Metrics) converted(d time.Duration) {
	if m == nil {
		return
	}
	m.convert.Observe(d.Seconds())
}
