package app

import (
	"errors"
	"flag"
	"io/fs"

	"pingpong-life/internal/config"
	"pingpong-life/internal/core"
	"pingpong-life/internal/export"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Res      int
	Tick     float64
	Tint     string
	Settings string
	Seed     int64
	Width    int
	Height   int
	OutDir   string
	Debug    bool
}

// NewConfig returns a Config populated with the default settings.
func NewConfig() *Config {
	d := core.DefaultSettings()
	return &Config{
		Res:    d.Resolution,
		Tick:   d.TickMs,
		Tint:   "0.2,0.88,0.94",
		Seed:   42,
		Width:  1024,
		Height: 768,
		OutDir: export.DefaultDir,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Res, core.KeyResolution, c.Res, "grid resolution, rounded to a power of two")
	fs.Float64Var(&c.Tick, core.KeyTick, c.Tick, "milliseconds between generations (0 steps every frame)")
	fs.StringVar(&c.Tint, "tint", c.Tint, "fade tint applied to dying cells as r,g,b")
	fs.StringVar(&c.Settings, "settings", c.Settings, "YAML settings file, reloaded when it changes")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.StringVar(&c.OutDir, "out", c.OutDir, "directory for snapshots and recordings")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

// Resolve builds the starting settings: defaults, then the settings file if
// one exists, then any simulation flags set explicitly on fs.
func (c *Config) Resolve(set *flag.FlagSet) (core.Settings, error) {
	s := core.DefaultSettings()
	if c.Settings != "" {
		loaded, err := config.Load(c.Settings, s)
		switch {
		case err == nil:
			s = loaded
		case errors.Is(err, fs.ErrNotExist):
		default:
			return s, err
		}
	}
	overrides := map[string]string{}
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case core.KeyResolution, core.KeyTick, "tint":
			overrides[f.Name] = f.Value.String()
		}
	})
	return config.FromMap(s, overrides), nil
}
