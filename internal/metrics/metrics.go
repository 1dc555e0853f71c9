// Package metrics exports frame-loop counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
)

// Recorder implements engine.Observer with Prometheus collectors.
type Recorder struct {
	frames        prometheus.Counter
	steps         prometheus.Counter
	edits         prometheus.Counter
	reallocations prometheus.Counter
	frameTime     prometheus.Histogram
	resolution    prometheus.Gauge
}

var _ engine.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "life", Name: "frames_total", Help: "Frames run by the frame loop.",
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "life", Name: "steps_total", Help: "Generations computed.",
		}),
		edits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "life", Name: "edits_applied_total", Help: "Single-cell edits applied.",
		}),
		reallocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "life", Name: "swapchain_reallocations_total", Help: "Swapchain (re)allocations.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "life", Name: "frame_interval_seconds", Help: "Wall-clock time between frames.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		resolution: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "life", Name: "grid_resolution", Help: "Current grid edge length in cells.",
		}),
	}
	for _, c := range []prometheus.Collector{r.frames, r.steps, r.edits, r.reallocations, r.frameTime, r.resolution} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Frame records one frame and the interval since the previous one.
func (r *Recorder) Frame(elapsed time.Duration) {
	r.frames.Inc()
	if elapsed > 0 {
		r.frameTime.Observe(elapsed.Seconds())
	}
}

// Step records one generation.
func (r *Recorder) Step() { r.steps.Inc() }

// Edits records n applied edits.
func (r *Recorder) Edits(n int) { r.edits.Add(float64(n)) }

// Reallocated records a swapchain allocation at size.
func (r *Recorder) Reallocated(size core.Size) {
	r.reallocations.Inc()
	r.resolution.Set(float64(size.W))
}
