package core

import "math/rand/v2"

var (
	// AlivePixel is the RGBA value written for a live cell.
	AlivePixel = [4]uint8{255, 255, 255, 255}
	// DeadPixel is the RGBA value written when a cell is erased or cleared.
	DeadPixel = [4]uint8{0, 0, 0, 0}
)

// FillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func FillBinaryRGBA(buf []byte, cells []uint8) {
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			copy(buf[base:base+4], AlivePixel[:])
			continue
		}
		copy(buf[base:base+4], DeadPixel[:])
	}
}

// RandomPixels returns an RGBA buffer for a w*h grid where every cell is
// alive with probability one half.
func RandomPixels(r *rand.Rand, w, h int) []byte {
	cells := make([]uint8, w*h)
	FillBinary(r, cells)
	buf := make([]byte, 4*len(cells))
	FillBinaryRGBA(buf, cells)
	return buf
}

// ClearPixels returns an all-dead RGBA buffer for a w*h grid.
func ClearPixels(w, h int) []byte {
	return make([]byte, 4*w*h)
}
