//go:build ebiten

package main

import (
	"flag"
	stdlog "log"

	"go.uber.org/zap"

	"pingpong-life/internal/app"
	"pingpong-life/internal/config"
	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
	"pingpong-life/internal/render"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log, err := app.NewLogger(cfg.Debug)
	if err != nil {
		stdlog.Fatal(err)
	}
	defer log.Sync()

	settings, err := cfg.Resolve(flag.CommandLine)
	if err != nil {
		log.Fatal("settings", zap.Error(err))
	}

	var updates <-chan core.Settings
	if cfg.Settings != "" {
		w, err := config.Watch(cfg.Settings, settings, log)
		if err != nil {
			log.Warn("settings file not watched", zap.Error(err))
		} else {
			defer w.Close()
			updates = w.Updates()
		}
	}

	eng, err := engine.New(render.NewBackend(log), engine.Options{
		Logger:    log,
		Settings:  settings,
		Seed:      cfg.Seed,
		ViewportW: cfg.Width,
		ViewportH: cfg.Height,
	})
	if err != nil {
		log.Fatal("engine", zap.Error(err))
	}

	game := app.New(eng, updates, cfg.OutDir, log)
	if err := app.Run(game, "life", cfg.Width, cfg.Height); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
