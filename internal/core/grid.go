package core

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch reports a pixel buffer whose length does not match the grid.
var ErrSizeMismatch = errors.New("pixel buffer size mismatch")

// Grid stores a 2D grid of RGBA8 cells in row-major order, row 0 first. A
// cell is alive when its alpha byte is non-zero; the colour channels carry
// the fading trail left by dead cells.
type Grid struct {
	W, H int
	pix  []uint8
}

var _ Target = (*Grid)(nil)

// NewGrid allocates a cleared grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, pix: make([]uint8, 4*w*h)}
}

// AllocateGrid is an Allocator producing CPU grids.
func AllocateGrid(size Size) (Target, error) {
	return NewGrid(size.W, size.H), nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Pix exposes the backing slice so pipelines can read/write values directly.
func (g *Grid) Pix() []uint8 { return g.pix }

// Index returns the byte offset of the pixel at (x, y).
func (g *Grid) Index(x, y int) int { return 4 * (y*g.W + x) }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Alive reports whether the cell at (x, y) is alive. Coordinates wrap.
func (g *Grid) Alive(x, y int) bool {
	x, y = g.Wrap(x, y)
	return g.pix[g.Index(x, y)+3] != 0
}

// SetCell overwrites a single cell. Coordinates wrap.
func (g *Grid) SetCell(x, y int, alive bool) {
	x, y = g.Wrap(x, y)
	i := g.Index(x, y)
	if alive {
		copy(g.pix[i:i+4], AlivePixel[:])
		return
	}
	copy(g.pix[i:i+4], DeadPixel[:])
}

// Upload replaces the whole grid with pix.
func (g *Grid) Upload(pix []byte) error {
	if len(pix) != len(g.pix) {
		return fmt.Errorf("upload %d bytes into %dx%d grid: %w", len(pix), g.W, g.H, ErrSizeMismatch)
	}
	copy(g.pix, pix)
	return nil
}

// ReadPixels copies the grid contents into dst.
func (g *Grid) ReadPixels(dst []byte) error {
	if len(dst) != len(g.pix) {
		return fmt.Errorf("read %dx%d grid into %d bytes: %w", g.W, g.H, len(dst), ErrSizeMismatch)
	}
	copy(dst, g.pix)
	return nil
}

// Clear kills every cell and erases trails.
func (g *Grid) Clear() {
	for i := range g.pix {
		g.pix[i] = 0
	}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for i := 3; i < len(g.pix); i += 4 {
		if g.pix[i] != 0 {
			n++
		}
	}
	return n
}
