// Package config turns flag values and settings files into sanitized
// core.Settings, and watches a settings file for changes.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pingpong-life/internal/core"
)

// FromMap populates settings from a string map (flag-style key/value pairs)
// on top of base. Values that do not parse keep the base value; values that
// parse are sanitized rather than rejected.
func FromMap(base core.Settings, cfg map[string]string) core.Settings {
	s := base
	if cfg == nil {
		return core.SanitizeSettings(s)
	}
	if v, ok := cfg[core.KeyResolution]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			s.Resolution = core.NearestPowerOfTwo(parsed)
		}
	}
	if v, ok := cfg[core.KeyTick]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			s.TickMs = parsed
		}
	}
	if v, ok := cfg["tint"]; ok {
		if tint, err := ParseTint(v); err == nil {
			s.Tint = tint
		}
	}
	for key, dst := range map[string]*float64{
		core.KeyTintR: &s.Tint.R,
		core.KeyTintG: &s.Tint.G,
		core.KeyTintB: &s.Tint.B,
	} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				*dst = parsed
			}
		}
	}
	return core.SanitizeSettings(s)
}

// ParseTint parses "r,g,b" with each channel a decimal number.
func ParseTint(v string) (core.Tint, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return core.Tint{}, fmt.Errorf("tint %q: want three comma-separated channels", v)
	}
	var ch [3]float64
	for i, p := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Tint{}, fmt.Errorf("tint %q channel %d: %w", v, i, err)
		}
		ch[i] = parsed
	}
	return core.Tint{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// File is the on-disk settings layout. Absent fields keep their base value.
type File struct {
	Resolution *float64  `yaml:"resolution"`
	TickMs     *float64  `yaml:"tick_ms"`
	Tint       []float64 `yaml:"tint,flow"`
}

// Apply overlays the fields present in f onto base and sanitizes the result.
func (f File) Apply(base core.Settings) (core.Settings, error) {
	s := base
	if f.Resolution != nil {
		s.Resolution = core.NearestPowerOfTwo(*f.Resolution)
	}
	if f.TickMs != nil {
		s.TickMs = *f.TickMs
	}
	if f.Tint != nil {
		if len(f.Tint) != 3 {
			return base, fmt.Errorf("tint: want 3 channels, got %d", len(f.Tint))
		}
		s.Tint = core.Tint{R: f.Tint[0], G: f.Tint[1], B: f.Tint[2]}
	}
	return core.SanitizeSettings(s), nil
}

// Parse decodes a YAML settings document on top of base.
func Parse(data []byte, base core.Settings) (core.Settings, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}
	return f.Apply(base)
}

// Load reads the YAML settings file at path on top of base.
func Load(path string, base core.Settings) (core.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as YAML.
func Save(path string, s core.Settings) error {
	res := float64(s.Resolution)
	tick := s.TickMs
	data, err := yaml.Marshal(File{
		Resolution: &res,
		TickMs:     &tick,
		Tint:       []float64{s.Tint.R, s.Tint.G, s.Tint.B},
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
