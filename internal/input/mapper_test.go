package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong-life/internal/core"
	"pingpong-life/internal/view"
)

func TestPointerToCellAtCellCentres(t *testing.T) {
	const (
		w, h = 512, 512
		s    = 16
	)
	m := NewMapper(w, h)
	cam := core.DefaultCamera()
	size := core.Size{W: s, H: s}
	cellPx := float64(w) / s

	for cy := 0; cy < s; cy++ {
		for cx := 0; cx < s; cx++ {
			// Cell 0 starts at the viewport centre and the grid repeats.
			px := float64(w)/2 + (float64(cx)+0.5)*cellPx
			if px >= w {
				px -= w
			}
			py := float64(h)/2 - (float64(cy)+0.5)*cellPx
			if py < 0 {
				py += h
			}
			gx, gy := m.PointerToCell(px, py, cam, size)
			require.Equal(t, [2]int{cx, cy}, [2]int{gx, gy}, "pixel (%v,%v)", px, py)
		}
	}
}

func TestPointerToCellMatchesView(t *testing.T) {
	const w, h = 640, 480
	m := NewMapper(w, h)
	cam := core.Camera{X: 0.25, Y: -0.125, Zoom: 0.5}
	size := core.Size{W: 64, H: 64}

	for py := 0; py < h; py += 7 {
		for px := 0; px < w; px += 11 {
			fx, fy := float64(px)+0.5, float64(py)+0.5
			gx, gy := m.PointerToCell(fx, fy, cam, size)
			vx, vy := view.CellAt(fx, fy, w, h, cam, size)
			require.Equal(t, [2]int{vx, vy}, [2]int{gx, gy}, "pixel (%d,%d)", px, py)
			require.True(t, gx >= 0 && gx < size.W && gy >= 0 && gy < size.H)
		}
	}
}

func TestPanFlipsVerticalAxis(t *testing.T) {
	m := NewMapper(200, 100)
	cam := core.Camera{Zoom: 0.5}
	cam = m.Pan(cam, 20, 10)
	assert.InDelta(t, 20.0/200*PanSpeed*0.5, cam.X, 1e-12)
	assert.InDelta(t, -10.0/100*PanSpeed*0.5, cam.Y, 1e-12)
}

func TestZoomClamps(t *testing.T) {
	cam := core.DefaultCamera()
	cam = Zoom(cam, 1)
	assert.InDelta(t, 1.08, cam.Zoom, 1e-12)
	cam = Zoom(cam, -1)
	assert.InDelta(t, 1.08*0.92, cam.Zoom, 1e-12)

	for i := 0; i < 100; i++ {
		cam = Zoom(cam, 1)
	}
	assert.Equal(t, core.MaxZoom, cam.Zoom)
	for i := 0; i < 100; i++ {
		cam = Zoom(cam, -1)
	}
	assert.Equal(t, core.MinZoom, cam.Zoom)
}

func TestSetViewportRejectsEmpty(t *testing.T) {
	m := NewMapper(0, -3)
	w, h := m.Viewport()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
