// Package step implements the generation pass: it reads the current grid
// texture and writes the next one in full under the B3/S23 rule on a torus.
package step

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pingpong-life/internal/core"
)

// ErrUnsupportedTarget is returned when a target is not a CPU grid.
var ErrUnsupportedTarget = errors.New("step: target is not a *core.Grid")

// minBandRows keeps bands large enough that goroutine overhead stays small.
const minBandRows = 16

// Pipeline evaluates the rule for every cell, splitting the grid into row
// bands that are computed concurrently. Every band reads only src and writes
// only its own rows of dst, so no synchronisation is needed beyond the wait.
type Pipeline struct {
	workers int
}

// New returns a pipeline using up to workers goroutines. Values below one
// use GOMAXPROCS.
func New(workers int) *Pipeline {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pipeline{workers: workers}
}

// Next reports the next state of a cell given its state and live neighbour
// count: exactly three neighbours force life, anything but two forces death,
// and two neighbours preserve the current state.
func Next(alive bool, count int) bool {
	if count == 3 {
		return true
	}
	if count != 2 {
		return false
	}
	return alive
}

// Step writes the generation following src into dst. Dead cells keep their
// previous colour scaled by tint with alpha zeroed, leaving a fading trail.
func (p *Pipeline) Step(dst, src core.Target, tint core.Tint) error {
	in, ok := src.(*core.Grid)
	if !ok {
		return ErrUnsupportedTarget
	}
	out, ok := dst.(*core.Grid)
	if !ok {
		return ErrUnsupportedTarget
	}
	if in.Size() != out.Size() {
		return fmt.Errorf("step %dx%d into %dx%d: %w", in.W, in.H, out.W, out.H, core.ErrSizeMismatch)
	}

	bands := in.H / minBandRows
	if bands > p.workers {
		bands = p.workers
	}
	if bands <= 1 {
		stepRows(out, in, tint, 0, in.H)
		return nil
	}

	var g errgroup.Group
	rows := (in.H + bands - 1) / bands
	for y0 := 0; y0 < in.H; y0 += rows {
		y1 := y0 + rows
		if y1 > in.H {
			y1 = in.H
		}
		y0 := y0
		g.Go(func() error {
			stepRows(out, in, tint, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

func stepRows(out, in *core.Grid, tint core.Tint, y0, y1 int) {
	w, h := in.W, in.H
	src, dst := in.Pix(), out.Pix()
	for y := y0; y < y1; y++ {
		ym := ((y - 1 + h) % h) * w
		yc := y * w
		yp := ((y + 1) % h) * w
		for x := 0; x < w; x++ {
			xm := (x - 1 + w) % w
			xp := (x + 1) % w
			count := live(src, ym+xm) + live(src, ym+x) + live(src, ym+xp) +
				live(src, yc+xm) + live(src, yc+xp) +
				live(src, yp+xm) + live(src, yp+x) + live(src, yp+xp)

			i := 4 * (yc + x)
			if Next(src[i+3] != 0, count) {
				copy(dst[i:i+4], core.AlivePixel[:])
				continue
			}
			dst[i+0] = fade(src[i+0], tint.R)
			dst[i+1] = fade(src[i+1], tint.G)
			dst[i+2] = fade(src[i+2], tint.B)
			dst[i+3] = 0
		}
	}
}

func live(pix []uint8, cell int) int {
	if pix[4*cell+3] != 0 {
		return 1
	}
	return 0
}

func fade(c uint8, scale float64) uint8 {
	return uint8(float64(c)*scale + 0.5)
}
