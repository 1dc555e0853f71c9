package core

import (
	"math"
	"time"
)

const (
	// DefaultResolution is the edge length of a new grid.
	DefaultResolution = 256
	// MinResolution and MaxResolution bound the grid edge length.
	MinResolution = 1
	MaxResolution = 4096
	// MaxTickMs caps the tick interval at one minute.
	MaxTickMs = 60000
)

// Tint scales the colour of dead cells every generation, producing the fading
// trail. Channels are in [0, 1].
type Tint struct {
	R, G, B float64
}

// Settings are the user-tunable values read once per frame.
type Settings struct {
	// Resolution is the grid edge length, always a power of two.
	Resolution int
	// TickMs is the minimum wall-clock time between steps in milliseconds.
	TickMs float64
	Tint   Tint
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		Resolution: DefaultResolution,
		TickMs:     0,
		Tint:       Tint{R: 0.2, G: 0.88, B: 0.94},
	}
}

// TickInterval converts TickMs to a duration.
func (s Settings) TickInterval() time.Duration {
	return time.Duration(s.TickMs * float64(time.Millisecond))
}

// SanitizeSettings coerces every field into its valid range instead of
// rejecting bad input.
func SanitizeSettings(s Settings) Settings {
	s.Resolution = NearestPowerOfTwo(float64(s.Resolution))
	s.TickMs = sanitizeTick(s.TickMs)
	s.Tint = Tint{R: clamp01(s.Tint.R), G: clamp01(s.Tint.G), B: clamp01(s.Tint.B)}
	return s
}

// NearestPowerOfTwo rounds n to the nearest power of two in log space and
// clamps it to [MinResolution, MaxResolution].
func NearestPowerOfTwo(n float64) int {
	if math.IsNaN(n) || n < MinResolution {
		return MinResolution
	}
	if n > MaxResolution {
		return MaxResolution
	}
	p := int(math.Pow(2, math.Round(math.Log2(n))))
	if p > MaxResolution {
		p = MaxResolution
	}
	return p
}

func sanitizeTick(ms float64) float64 {
	if math.IsNaN(ms) || ms < 0 {
		return 0
	}
	if ms > MaxTickMs {
		return MaxTickMs
	}
	return ms
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
