package engine

import (
	"errors"
	"image"

	"pingpong-life/internal/core"
	"pingpong-life/internal/step"
	"pingpong-life/internal/view"
)

var (
	// ErrNoGraphicsContext is returned when the engine is started without a
	// backend to render with.
	ErrNoGraphicsContext = errors.New("graphics context unavailable")
	// ErrPipelineUnavailable is returned by a backend whose step or view
	// program failed to build.
	ErrPipelineUnavailable = errors.New("pipeline unavailable")
)

// Surface is anything the view pass can paint onto.
type Surface interface {
	Bounds() image.Rectangle
}

// Backend is the render context: it owns texture allocation and both
// passes. Implementations decide whether textures live in CPU or GPU memory.
type Backend interface {
	Allocate(size core.Size) (core.Target, error)
	Step(dst, src core.Target, tint core.Tint) error
	Draw(dst Surface, src core.Target, cam core.Camera) error
}

// Disposer is implemented by targets holding resources that must be
// released when the swapchain is reallocated.
type Disposer interface {
	Dispose()
}

// CPUBackend runs both passes on the CPU against *core.Grid textures and
// paints onto *image.RGBA surfaces.
type CPUBackend struct {
	step *step.Pipeline
	view *view.Pipeline
}

var _ Backend = (*CPUBackend)(nil)

// NewCPUBackend returns a CPU backend whose step pass uses up to workers
// goroutines.
func NewCPUBackend(workers int) *CPUBackend {
	return &CPUBackend{step: step.New(workers), view: &view.Pipeline{}}
}

// Allocate creates a cleared CPU grid.
func (b *CPUBackend) Allocate(size core.Size) (core.Target, error) {
	return core.AllocateGrid(size)
}

// Step runs the generation pass.
func (b *CPUBackend) Step(dst, src core.Target, tint core.Tint) error {
	return b.step.Step(dst, src, tint)
}

// Draw runs the view pass.
func (b *CPUBackend) Draw(dst Surface, src core.Target, cam core.Camera) error {
	img, ok := dst.(*image.RGBA)
	if !ok {
		return view.ErrUnsupportedSurface
	}
	grid, ok := src.(*core.Grid)
	if !ok {
		return view.ErrUnsupportedSurface
	}
	return b.view.Draw(img, grid, cam)
}
