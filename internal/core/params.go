package core

import "strconv"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Setting keys shared by the settings panel, flags and the settings file.
const (
	KeyResolution = "res"
	KeyTick       = "tick"
	KeyTintR      = "tint_r"
	KeyTintG      = "tint_g"
	KeyTintB      = "tint_b"
)

// Parameter describes the current value of a single setting.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterControl describes an adjustable setting shown on the settings
// panel. When Factor is positive, adjustments multiply or divide by Factor
// instead of adding Step.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step   float64
	Factor float64

	Min float64
	Max float64
}

// Parameters returns the current settings in display order.
func (s Settings) Parameters() []Parameter {
	return []Parameter{
		{Key: KeyResolution, Label: "Resolution", Type: ParamTypeInt, Value: strconv.Itoa(s.Resolution)},
		{Key: KeyTick, Label: "Tick (ms)", Type: ParamTypeFloat, Value: strconv.FormatFloat(s.TickMs, 'f', 0, 64)},
		{Key: KeyTintR, Label: "Tint red", Type: ParamTypeFloat, Value: strconv.FormatFloat(s.Tint.R, 'f', 2, 64)},
		{Key: KeyTintG, Label: "Tint green", Type: ParamTypeFloat, Value: strconv.FormatFloat(s.Tint.G, 'f', 2, 64)},
		{Key: KeyTintB, Label: "Tint blue", Type: ParamTypeFloat, Value: strconv.FormatFloat(s.Tint.B, 'f', 2, 64)},
	}
}

// ParameterControls lists the settings that can be adjusted interactively.
func ParameterControls() []ParameterControl {
	return []ParameterControl{
		{Key: KeyResolution, Label: "Resolution", Type: ParamTypeInt, Factor: 2, Min: MinResolution, Max: MaxResolution},
		{Key: KeyTick, Label: "Tick (ms)", Type: ParamTypeFloat, Step: 10, Min: 0, Max: MaxTickMs},
		{Key: KeyTintR, Label: "Tint red", Type: ParamTypeFloat, Step: 0.05, Min: 0, Max: 1},
		{Key: KeyTintG, Label: "Tint green", Type: ParamTypeFloat, Step: 0.05, Min: 0, Max: 1},
		{Key: KeyTintB, Label: "Tint blue", Type: ParamTypeFloat, Step: 0.05, Min: 0, Max: 1},
	}
}

// Value returns the numeric value of the setting named key.
func (s Settings) Value(key string) (float64, bool) {
	switch key {
	case KeyResolution:
		return float64(s.Resolution), true
	case KeyTick:
		return s.TickMs, true
	case KeyTintR:
		return s.Tint.R, true
	case KeyTintG:
		return s.Tint.G, true
	case KeyTintB:
		return s.Tint.B, true
	}
	return 0, false
}

// With returns a sanitized copy of s with the setting named key replaced.
// Unknown keys report false and leave s unchanged.
func (s Settings) With(key string, v float64) (Settings, bool) {
	switch key {
	case KeyResolution:
		s.Resolution = NearestPowerOfTwo(v)
	case KeyTick:
		s.TickMs = v
	case KeyTintR:
		s.Tint.R = v
	case KeyTintG:
		s.Tint.G = v
	case KeyTintB:
		s.Tint.B = v
	default:
		return s, false
	}
	return SanitizeSettings(s), true
}

// Adjust applies one increment of ctrl in the given direction to v and
// clamps the result to the control bounds.
func (c ParameterControl) Adjust(v float64, direction int) float64 {
	if direction == 0 {
		return v
	}
	switch {
	case c.Factor > 0 && direction > 0:
		v *= c.Factor
	case c.Factor > 0:
		v /= c.Factor
	default:
		step := c.Step
		if step <= 0 {
			step = 0.05
		}
		v += float64(direction) * step
	}
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	return v
}
