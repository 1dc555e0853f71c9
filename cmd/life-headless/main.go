// Command life-headless runs the simulation on the CPU backend for a fixed
// number of frames and writes the final grid to disk.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pingpong-life/internal/app"
	"pingpong-life/internal/config"
	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
	"pingpong-life/internal/export"
	"pingpong-life/internal/metrics"
)

type options struct {
	frames   int
	fps      int
	workers  int
	random   bool
	format   string
	settings core.Settings
	updates  <-chan core.Settings
	seed     int64
	width    int
	height   int
	outDir   string
}

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 256, 256
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 240, "frames to run before exporting")
	fps := flag.Int("fps", 60, "frame clock rate")
	workers := flag.Int("workers", runtime.NumCPU(), "number of step worker goroutines")
	random := flag.Bool("random", true, "seed the grid randomly before the first frame")
	format := flag.String("format", "png", "export format: png or bmp")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{
		frames:   *frames,
		fps:      *fps,
		workers:  *workers,
		random:   *random,
		format:   *format,
		settings: settings,
		seed:     cfg.Seed,
		width:    cfg.Width,
		height:   cfg.Height,
		outDir:   cfg.OutDir,
	}
	if cfg.Settings != "" {
		w, err := config.Watch(cfg.Settings, settings, log)
		if err != nil {
			log.Warn("settings file not watched", zap.Error(err))
		} else {
			defer w.Close()
			opts.updates = w.Updates()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if *metricsAddr != "" {
		srv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		defer srv.Close()
		log.Info("serving metrics", zap.String("addr", *metricsAddr))
	}

	path, err := run(ctx, opts, reg, log)
	if err != nil {
		log.Fatal("run", zap.Error(err))
	}
	log.Info("frame exported", zap.String("path", path))
}

// run drives the engine from a ticker for opts.frames frames and exports the
// final grid. Cancelling ctx stops early and still exports.
func run(ctx context.Context, opts options, reg prometheus.Registerer, log *zap.Logger) (string, error) {
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return "", err
	}
	eng, err := engine.New(engine.NewCPUBackend(opts.workers), engine.Options{
		Logger:    log,
		Observer:  rec,
		Settings:  opts.settings,
		Seed:      opts.seed,
		ViewportW: opts.width,
		ViewportH: opts.height,
	})
	if err != nil {
		return "", err
	}
	if opts.random {
		eng.RequestRandomSeed()
	}

	surface := image.NewRGBA(image.Rect(0, 0, opts.width, opts.height))
	clock := make(chan time.Time)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(clock)
		fps := opts.fps
		if fps <= 0 {
			fps = 60
		}
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for i := 0; i < opts.frames; i++ {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				select {
				case clock <- now:
				case <-gctx.Done():
					return nil
				}
			}
		}
		return nil
	})
	g.Go(func() error {
		return eng.Run(gctx, clock, surface, opts.updates)
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	stats := eng.Stats()
	log.Info("run finished",
		zap.Uint64("frames", stats.Frames),
		zap.Uint64("steps", stats.Steps),
		zap.Int("resolution", eng.Settings().Resolution))

	f, err := eng.ReadCurrentFrame()
	if err != nil {
		return "", err
	}
	return export.SaveSnapshot(opts.outDir, f, opts.format, time.Now())
}
