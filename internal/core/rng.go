package core

import "math/rand/v2"

// RNG wraps math/rand/v2 so random seeds are reproducible from a single int64.
type RNG struct {
	r     *rand.Rand
	seeds uint64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Pixels returns a fresh 50% density RGBA seed for a w*h grid. Each call
// draws from the same stream, so successive seeds differ.
func (r *RNG) Pixels(w, h int) []byte {
	r.seeds++
	return RandomPixels(r.r, w, h)
}

// Seeds reports how many random seeds have been produced.
func (r *RNG) Seeds() uint64 { return r.seeds }

// FillBinary fills the buffer with 0/1 values using the RNG.
func FillBinary(r *rand.Rand, buf []uint8) {
	for i := range buf {
		buf[i] = uint8(r.IntN(2))
	}
}
