// Package ui holds the on-screen settings panel and the frame meter.
package ui

import (
	"image"
	"math"
	"strconv"

	"pingpong-life/internal/core"
)

// SettingsTarget receives settings changed on the panel.
type SettingsTarget interface {
	Settings() core.Settings
	ApplySettings(core.Settings)
}

// Panel is the settings panel anchored to the right edge of the viewport.
// It holds layout and adjustment state; drawing lives with the HUD.
type Panel struct {
	target   SettingsTarget
	width    int
	visible  bool
	controls []controlState
}

type controlState struct {
	control core.ParameterControl
	value   float64
	text    string

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

// NewPanel lays out one row per adjustable setting.
func NewPanel(target SettingsTarget, width int) *Panel {
	if width < 0 {
		width = 0
	}
	p := &Panel{target: target, width: width}
	for _, ctrl := range core.ParameterControls() {
		p.controls = append(p.controls, controlState{control: ctrl, text: "--"})
	}
	p.layout()
	p.Refresh()
	return p
}

// Width returns the panel width in pixels.
func (p *Panel) Width() int { return p.width }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p != nil && p.visible }

// Toggle shows or hides the panel and returns the new state.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Refresh re-reads the current settings from the target.
func (p *Panel) Refresh() {
	if p.target == nil {
		return
	}
	s := p.target.Settings()
	for i := range p.controls {
		st := &p.controls[i]
		v, ok := s.Value(st.control.Key)
		if !ok {
			st.text = "--"
			continue
		}
		st.value = v
		st.text = formatValue(st.control, v)
	}
}

// Contains reports whether screen point (x, y) lies on the visible panel
// drawn at offsetX.
func (p *Panel) Contains(x, y, offsetX, height int) bool {
	if !p.Visible() {
		return false
	}
	return x >= offsetX && x < offsetX+p.width && y >= 0 && y < height
}

// Click handles a left click at screen point (x, y) with the panel drawn at
// offsetX. It reports whether a setting changed.
func (p *Panel) Click(x, y, offsetX int) bool {
	if !p.Visible() {
		return false
	}
	px := x - offsetX
	for i := range p.controls {
		st := &p.controls[i]
		switch {
		case pointInRect(px, y, st.minusRect):
			return p.adjust(i, -1)
		case pointInRect(px, y, st.plusRect):
			return p.adjust(i, 1)
		}
	}
	return false
}

// CanAdjust reports whether control i can move in direction.
func (p *Panel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 {
		return false
	}
	st := p.controls[i]
	return st.control.Adjust(st.value, direction) != st.value
}

func (p *Panel) adjust(i, direction int) bool {
	if p.target == nil || !p.CanAdjust(i, direction) {
		return false
	}
	st := &p.controls[i]
	next, ok := p.target.Settings().With(st.control.Key, st.control.Adjust(st.value, direction))
	if !ok {
		return false
	}
	p.target.ApplySettings(next)
	p.Refresh()
	return true
}

func (p *Panel) layout() {
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(p.width-panelPadding-buttonSize, buttonY, p.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		p.controls[i].top = top
		p.controls[i].minusRect = minus
		p.controls[i].plusRect = plus
	}
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 2
	switch {
	case ctrl.Step >= 1:
		precision = 0
	case ctrl.Step < 0.01:
		precision = 3
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
