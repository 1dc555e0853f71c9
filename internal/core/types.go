package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Camera is the view transform applied by the view pass. Position is an
// offset in normalized grid space; Zoom scales the visible area.
type Camera struct {
	X, Y float64
	Zoom float64
}

const (
	// MinZoom and MaxZoom bound Camera.Zoom.
	MinZoom = 0.08
	MaxZoom = 2.0
)

// DefaultCamera returns a camera centred on the grid origin at zoom 1.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if z != z {
		return 1
	}
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// Edit is a single-cell overwrite queued by pointer input.
type Edit struct {
	X, Y  int
	Alive bool
}

// Frame is a raw RGBA8 copy of a grid texture. Row 0 holds grid y = 0.
type Frame struct {
	W, H int
	Pix  []byte
}

// Target is one swapchain slot: a grid texture that the step pass writes in
// full and that edits and bulk uploads overwrite in place.
type Target interface {
	Size() Size
	Clear()
	SetCell(x, y int, alive bool)
	Upload(pix []byte) error
	ReadPixels(dst []byte) error
}

// Allocator creates a cleared Target of the given dimensions.
type Allocator func(size Size) (Target, error)
