package ui

import (
	"fmt"
	"time"
)

// meterSmoothing weights each new frame interval in the running average.
const meterSmoothing = 0.1

// Meter tracks a smoothed frame interval for the on-screen readout.
type Meter struct {
	visible bool
	last    time.Time
	avg     float64 // milliseconds
	samples int
}

// Toggle shows or hides the readout and returns the new state.
func (m *Meter) Toggle() bool {
	m.visible = !m.visible
	return m.visible
}

// Visible reports whether the readout is shown.
func (m *Meter) Visible() bool { return m.visible }

// Observe records a frame at now.
func (m *Meter) Observe(now time.Time) {
	if !m.last.IsZero() {
		ms := float64(now.Sub(m.last)) / float64(time.Millisecond)
		if m.samples == 0 {
			m.avg = ms
		} else {
			m.avg += (ms - m.avg) * meterSmoothing
		}
		m.samples++
	}
	m.last = now
}

// Millis returns the smoothed frame interval in milliseconds.
func (m *Meter) Millis() float64 { return m.avg }

// Label formats the readout line.
func (m *Meter) Label(running bool) string {
	s := "-- ms"
	if m.samples > 0 {
		s = fmt.Sprintf("%.1f ms", m.avg)
	}
	if !running {
		s += "  PAUSED"
	}
	return s
}
