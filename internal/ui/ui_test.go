package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong-life/internal/core"
)

type fakeTarget struct {
	s       core.Settings
	applied int
}

func (f *fakeTarget) Settings() core.Settings { return f.s }

func (f *fakeTarget) ApplySettings(s core.Settings) {
	f.s = s
	f.applied++
}

func TestPanelShowsCurrentSettings(t *testing.T) {
	p := NewPanel(&fakeTarget{s: core.DefaultSettings()}, 240)
	require.Len(t, p.controls, len(core.ParameterControls()))
	assert.Equal(t, "256", p.controls[0].text)
	assert.Equal(t, "0", p.controls[1].text)
	assert.Equal(t, "0.20", p.controls[2].text)
}

func TestPanelClickAdjustsSettings(t *testing.T) {
	target := &fakeTarget{s: core.DefaultSettings()}
	p := NewPanel(target, 240)
	const offset = 400

	plus := p.controls[0].plusRect.Min
	assert.False(t, p.Click(offset+plus.X+1, plus.Y+1, offset), "hidden panel ignores clicks")

	require.True(t, p.Toggle())
	require.True(t, p.Click(offset+plus.X+1, plus.Y+1, offset))
	assert.Equal(t, 512, target.s.Resolution)
	assert.Equal(t, "512", p.controls[0].text)

	minus := p.controls[1].minusRect.Min
	assert.False(t, p.Click(offset+minus.X+1, minus.Y+1, offset), "tick already at minimum")
	assert.Equal(t, 1, target.applied)

	plus = p.controls[3].plusRect.Min
	require.True(t, p.Click(offset+plus.X+1, plus.Y+1, offset))
	assert.InDelta(t, 0.93, target.s.Tint.G, 1e-9)

	assert.False(t, p.Click(offset+1, 1, offset), "background click")
}

func TestPanelLimits(t *testing.T) {
	s := core.DefaultSettings()
	s.Resolution = core.MaxResolution
	s.Tint.B = 1
	p := NewPanel(&fakeTarget{s: s}, 240)
	assert.False(t, p.CanAdjust(0, 1))
	assert.True(t, p.CanAdjust(0, -1))
	assert.False(t, p.CanAdjust(4, 1))
	assert.False(t, p.CanAdjust(99, 1))
}

func TestPanelContains(t *testing.T) {
	p := NewPanel(nil, 100)
	assert.False(t, p.Contains(550, 10, 500, 300))
	p.Toggle()
	assert.True(t, p.Contains(550, 10, 500, 300))
	assert.False(t, p.Contains(499, 10, 500, 300))
	assert.False(t, p.Contains(550, 300, 500, 300))
	p.Toggle()
	assert.False(t, p.Visible())
}

func TestMeter(t *testing.T) {
	var m Meter
	assert.Equal(t, "-- ms", m.Label(true))
	assert.Equal(t, "-- ms  PAUSED", m.Label(false))

	start := time.Unix(0, 0)
	m.Observe(start)
	m.Observe(start.Add(20 * time.Millisecond))
	assert.InDelta(t, 20, m.Millis(), 1e-9)
	m.Observe(start.Add(30 * time.Millisecond))
	assert.InDelta(t, 19, m.Millis(), 1e-9)
	assert.Equal(t, "19.0 ms", m.Label(true))

	assert.True(t, m.Toggle())
	assert.True(t, m.Visible())
}
