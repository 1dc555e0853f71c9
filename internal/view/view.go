// Package view paints the current grid texture onto a surface through the
// camera's pan and zoom.
package view

import (
	"errors"
	"image"
	"math"

	"pingpong-life/internal/core"
)

// ErrUnsupportedSurface is returned when the surface or source cannot be
// drawn by the CPU pipeline.
var ErrUnsupportedSurface = errors.New("view: unsupported surface or source")

// Transform maps a fragment coordinate to texture space. fx and fy are
// measured from the bottom-left corner of a w*h viewport. The x axis is
// scaled by the aspect ratio so cells stay square on wide viewports. The
// result is not wrapped.
func Transform(fx, fy float64, w, h int, cam core.Camera) (u, v float64) {
	fw, fh := float64(w), float64(h)
	u = ((fx/fw-0.5)*cam.Zoom - cam.X) * (fw / fh)
	v = (fy/fh-0.5)*cam.Zoom - cam.Y
	return u, v
}

// CellAt returns the cell displayed under device pixel (px, py), with py
// measured from the top of the viewport. The draw path does not use it; it
// is the reference inverse that pointer mapping is checked against.
func CellAt(px, py float64, w, h int, cam core.Camera, size core.Size) (int, int) {
	u, v := Transform(px, float64(h)-py, w, h, cam)
	return wrap(int(math.Floor(u*float64(size.W))), size.W), wrap(int(math.Floor(v*float64(size.H))), size.H)
}

// CellsPerPixel reports how many grid cells one screen pixel covers. Values
// above one mean the grid is minified.
func CellsPerPixel(h int, cam core.Camera, size core.Size) float64 {
	return cam.Zoom * float64(size.H) / float64(h)
}

// Pipeline draws grids onto RGBA images. Magnified grids use nearest
// sampling so cells stay crisp; minified grids are filtered bilinearly.
type Pipeline struct {
	// Nearest disables bilinear minification.
	Nearest bool
}

// Draw paints src onto dst through cam. Output pixels are fully opaque.
func (p *Pipeline) Draw(dst *image.RGBA, src *core.Grid, cam core.Camera) error {
	if dst == nil || src == nil {
		return ErrUnsupportedSurface
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	size := src.Size()
	linear := !p.Nearest && CellsPerPixel(h, cam, size) > 1
	sw, sh := float64(size.W), float64(size.H)

	for sy := 0; sy < h; sy++ {
		fy := float64(h-sy) - 0.5
		row := dst.Pix[sy*dst.Stride:]
		for sx := 0; sx < w; sx++ {
			u, v := Transform(float64(sx)+0.5, fy, w, h, cam)
			var r, g, bl uint8
			if linear {
				r, g, bl = bilinear(src, u*sw-0.5, v*sh-0.5)
			} else {
				i := src.Index(wrap(int(math.Floor(u*sw)), size.W), wrap(int(math.Floor(v*sh)), size.H))
				pix := src.Pix()
				r, g, bl = pix[i], pix[i+1], pix[i+2]
			}
			o := 4 * sx
			row[o+0] = r
			row[o+1] = g
			row[o+2] = bl
			row[o+3] = 0xff
		}
	}
	return nil
}

func bilinear(src *core.Grid, tx, ty float64) (uint8, uint8, uint8) {
	x0f, y0f := math.Floor(tx), math.Floor(ty)
	ax, ay := tx-x0f, ty-y0f
	x0, y0 := wrap(int(x0f), src.W), wrap(int(y0f), src.H)
	x1, y1 := (x0+1)%src.W, (y0+1)%src.H
	pix := src.Pix()
	i00, i10 := src.Index(x0, y0), src.Index(x1, y0)
	i01, i11 := src.Index(x0, y1), src.Index(x1, y1)

	var out [3]uint8
	for c := 0; c < 3; c++ {
		top := float64(pix[i00+c])*(1-ax) + float64(pix[i10+c])*ax
		bot := float64(pix[i01+c])*(1-ax) + float64(pix[i11+c])*ax
		out[c] = uint8(top*(1-ay) + bot*ay + 0.5)
	}
	return out[0], out[1], out[2]
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
