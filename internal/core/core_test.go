package core

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapchainAlternation(t *testing.T) {
	sc, err := NewSwapchain(DefaultSlots, Size{W: 4, H: 4}, AllocateGrid)
	require.NoError(t, err)
	require.Equal(t, 2, sc.Len())

	first := sc.Current()
	second := sc.Peek()
	require.NotSame(t, first.(*Grid), second.(*Grid))

	for n := 1; n <= 7; n++ {
		got := sc.Advance()
		assert.Equal(t, n%2, sc.Index(), "after %d advances", n)
		assert.Same(t, sc.Slot(n%2).(*Grid), got.(*Grid))
		assert.Same(t, got.(*Grid), sc.Current().(*Grid))
	}
}

func TestSwapchainPeekDoesNotAdvance(t *testing.T) {
	sc, err := NewSwapchain(1, Size{W: 2, H: 2}, AllocateGrid)
	require.NoError(t, err)
	require.Equal(t, DefaultSlots, sc.Len(), "slot count is raised to two")

	next := sc.Peek()
	assert.Equal(t, 0, sc.Index())
	assert.Same(t, next.(*Grid), sc.Advance().(*Grid))
}

func TestSwapchainAllocationClears(t *testing.T) {
	dirty := func(size Size) (Target, error) {
		g := NewGrid(size.W, size.H)
		for i := range g.Pix() {
			g.Pix()[i] = 0xff
		}
		return g, nil
	}
	sc, err := NewSwapchain(2, Size{W: 3, H: 3}, dirty)
	require.NoError(t, err)
	for i := 0; i < sc.Len(); i++ {
		assert.Zero(t, sc.Slot(i).(*Grid).Population())
	}
}

func TestSwapchainAllocatorError(t *testing.T) {
	boom := errors.New("no texture")
	_, err := NewSwapchain(2, Size{W: 1, H: 1}, func(Size) (Target, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestGridWrapsCoordinates(t *testing.T) {
	g := NewGrid(4, 4)
	g.SetCell(-1, -1, true)
	assert.True(t, g.Alive(3, 3))
	assert.True(t, g.Alive(7, -5))
	g.SetCell(3, 3, false)
	assert.Zero(t, g.Population())
}

func TestGridUploadSizeMismatch(t *testing.T) {
	g := NewGrid(2, 2)
	err := g.Upload(make([]byte, 3))
	require.ErrorIs(t, err, ErrSizeMismatch)
	err = g.ReadPixels(make([]byte, 17))
	require.ErrorIs(t, err, ErrSizeMismatch)

	pix := make([]byte, 16)
	copy(pix[12:], AlivePixel[:])
	require.NoError(t, g.Upload(pix))
	assert.True(t, g.Alive(1, 1))
}

func TestTickGateAtMostOneStepPerInterval(t *testing.T) {
	gate := NewTickGate(100 * time.Millisecond)
	start := time.Unix(0, 0)
	steps := 0
	for i := 0; i < 10; i++ {
		if gate.Ready(start.Add(time.Duration(i) * 10 * time.Millisecond)) {
			steps++
		}
	}
	assert.Equal(t, 1, steps)
}

func TestTickGateSlowFramesStepEveryFrame(t *testing.T) {
	gate := NewTickGate(100 * time.Millisecond)
	start := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		assert.True(t, gate.Ready(start.Add(time.Duration(i)*150*time.Millisecond)), "frame %d", i)
	}
}

func TestTickGateZeroIntervalAlwaysFires(t *testing.T) {
	gate := NewTickGate(0)
	now := time.Unix(10, 0)
	for i := 0; i < 3; i++ {
		assert.True(t, gate.Ready(now))
	}
	gate.SetInterval(-time.Second)
	assert.Zero(t, gate.Interval())
}

func TestTickGateReset(t *testing.T) {
	gate := NewTickGate(time.Hour)
	now := time.Unix(0, 0)
	require.True(t, gate.Ready(now))
	require.False(t, gate.Ready(now.Add(time.Minute)))
	assert.Equal(t, time.Minute, gate.Elapsed(now.Add(time.Minute)))
	gate.Reset()
	assert.True(t, gate.Ready(now.Add(2*time.Minute)))
}

func TestTickGateUndo(t *testing.T) {
	gate := NewTickGate(100 * time.Millisecond)
	start := time.Unix(0, 0)
	require.True(t, gate.Ready(start))
	require.True(t, gate.Ready(start.Add(100*time.Millisecond)))
	gate.Undo()
	assert.True(t, gate.Ready(start.Add(110*time.Millisecond)), "undone grant is judged against the one before it")
	assert.False(t, gate.Ready(start.Add(120*time.Millisecond)))

	first := NewTickGate(time.Hour)
	require.True(t, first.Ready(start))
	first.Undo()
	assert.True(t, first.Ready(start.Add(time.Second)))
}

func TestNearestPowerOfTwo(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{256, 256},
		{300, 256},
		{370, 512},
		{3, 4},
		{1, 1},
		{0, MinResolution},
		{-20, MinResolution},
		{math.NaN(), MinResolution},
		{1e9, MaxResolution},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NearestPowerOfTwo(tc.in), "input %v", tc.in)
	}
}

func TestSanitizeSettings(t *testing.T) {
	s := SanitizeSettings(Settings{
		Resolution: 100,
		TickMs:     math.NaN(),
		Tint:       Tint{R: 1.5, G: -0.2, B: math.NaN()},
	})
	assert.Equal(t, 128, s.Resolution)
	assert.Zero(t, s.TickMs)
	assert.Equal(t, Tint{R: 1, G: 0, B: 0}, s.Tint)

	s = SanitizeSettings(Settings{Resolution: 256, TickMs: 2.5e6})
	assert.Equal(t, float64(MaxTickMs), s.TickMs)
	assert.Equal(t, 60*time.Second, s.TickInterval())
}

func TestSettingsWithAndAdjust(t *testing.T) {
	s := DefaultSettings()
	controls := ParameterControls()
	require.Len(t, controls, len(s.Parameters()))

	res := controls[0]
	v, ok := s.Value(res.Key)
	require.True(t, ok)
	s, ok = s.With(res.Key, res.Adjust(v, 1))
	require.True(t, ok)
	assert.Equal(t, 512, s.Resolution)
	s, _ = s.With(res.Key, res.Adjust(float64(s.Resolution), -1))
	assert.Equal(t, 256, s.Resolution)

	tint := controls[2]
	s, _ = s.With(tint.Key, tint.Adjust(0.98, 1))
	assert.Equal(t, 1.0, s.Tint.R)

	_, ok = s.With("bogus", 1)
	assert.False(t, ok)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.01))
	assert.Equal(t, MaxZoom, ClampZoom(5))
	assert.Equal(t, 1.0, ClampZoom(math.NaN()))
	assert.Equal(t, 0.5, ClampZoom(0.5))
}
