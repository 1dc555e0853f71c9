// Package input converts device-space pointer and wheel input into grid edits
// and camera updates.
package input

import (
	"math"

	"pingpong-life/internal/core"
)

const (
	// PanSpeed scales drag distance relative to the viewport.
	PanSpeed = 0.6
	// ZoomOutFactor and ZoomInFactor are applied per wheel notch.
	ZoomOutFactor = 1.08
	ZoomInFactor  = 0.92
)

// Mapper holds the viewport dimensions needed to interpret device
// coordinates. The zero value is unusable until SetViewport is called.
type Mapper struct {
	w, h int
}

// NewMapper returns a mapper for a w*h viewport.
func NewMapper(w, h int) *Mapper {
	m := &Mapper{}
	m.SetViewport(w, h)
	return m
}

// SetViewport records the current viewport size in device pixels.
func (m *Mapper) SetViewport(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.w, m.h = w, h
}

// Viewport returns the current viewport size.
func (m *Mapper) Viewport() (int, int) { return m.w, m.h }

// PointerToCell returns the grid cell under device pixel (px, py), with py
// measured from the top of the viewport. It inverts the view transform so a
// click lands on the cell drawn under the pointer; results wrap into
// [0, size).
func (m *Mapper) PointerToCell(px, py float64, cam core.Camera, size core.Size) (int, int) {
	w, h := float64(m.w), float64(m.h)
	sw, sh := float64(size.W), float64(size.H)
	cx := roundHalfUp(((px/w-0.5)*cam.Zoom-cam.X)*sw*(w/h) - 0.5)
	cy := roundHalfUp(((1-py/h-0.5)*cam.Zoom-cam.Y)*sh - 0.5)
	return wrap(cx, size.W), wrap(cy, size.H)
}

// Pan moves the camera by a pointer delta in device pixels. Screen y grows
// downwards while grid y grows upwards, so the vertical axis is flipped.
func (m *Mapper) Pan(cam core.Camera, dx, dy float64) core.Camera {
	cam.X += dx / float64(m.w) * PanSpeed * cam.Zoom
	cam.Y -= dy / float64(m.h) * PanSpeed * cam.Zoom
	return cam
}

// Zoom applies one wheel notch. Positive directions zoom out.
func Zoom(cam core.Camera, direction float64) core.Camera {
	if direction > 0 {
		cam.Zoom *= ZoomOutFactor
	} else {
		cam.Zoom *= ZoomInFactor
	}
	cam.Zoom = core.ClampZoom(cam.Zoom)
	return cam
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
