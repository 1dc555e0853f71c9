// Package engine sequences the simulation: it owns the swapchain, the tick
// gate, the edit queue and the camera, and exposes the entry points used by
// input handlers, the settings panel and the exporter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pingpong-life/internal/core"
	"pingpong-life/internal/input"
)

type bulkOp int

const (
	bulkNone bulkOp = iota
	bulkRandom
	bulkClear
)

func (b bulkOp) String() string {
	switch b {
	case bulkRandom:
		return "random"
	case bulkClear:
		return "clear"
	default:
		return "none"
	}
}

// Stats are cumulative counters maintained by the frame loop.
type Stats struct {
	Frames        uint64
	Steps         uint64
	EditsApplied  uint64
	Reallocations uint64
	// LastFrame is the wall-clock time between the two most recent frames.
	LastFrame time.Duration
}

// Observer receives frame-loop events, for example to export metrics. Calls
// happen on the frame-loop goroutine.
type Observer interface {
	Frame(elapsed time.Duration)
	Step()
	Edits(n int)
	Reallocated(size core.Size)
}

type nopObserver struct{}

func (nopObserver) Frame(time.Duration)   {}
func (nopObserver) Step()                 {}
func (nopObserver) Edits(int)             {}
func (nopObserver) Reallocated(core.Size) {}

// Options configure a new Engine.
type Options struct {
	Logger   *zap.Logger
	Observer Observer
	Settings core.Settings
	// Seed drives the random fill requested with RequestRandomSeed.
	Seed int64
	// ViewportW and ViewportH are the initial surface size in device pixels.
	ViewportW, ViewportH int
}

// Engine runs the frame loop. It is not safe for concurrent use: input
// handlers and the loop must share one goroutine.
type Engine struct {
	log      *zap.Logger
	observer Observer
	backend  Backend

	swap     *core.Swapchain
	gate     *core.TickGate
	edits    EditQueue
	mapper   *input.Mapper
	cam      core.Camera
	settings core.Settings
	running  bool
	bulk     bulkOp
	rng      *core.RNG

	stats     Stats
	lastFrame time.Time
	reported  map[string]bool
}

// New creates an engine drawing through backend and allocates the initial
// swapchain. A nil backend yields ErrNoGraphicsContext.
func New(backend Backend, opts Options) (*Engine, error) {
	if backend == nil {
		return nil, ErrNoGraphicsContext
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	settings := opts.Settings
	if settings.Resolution == 0 {
		settings = core.DefaultSettings()
	}
	settings = core.SanitizeSettings(settings)

	e := &Engine{
		log:      log,
		observer: obs,
		backend:  backend,
		gate:     core.NewTickGate(settings.TickInterval()),
		mapper:   input.NewMapper(opts.ViewportW, opts.ViewportH),
		cam:      core.DefaultCamera(),
		settings: settings,
		running:  true,
		rng:      core.NewRNG(opts.Seed),
		reported: map[string]bool{},
	}
	if err := e.reallocate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Update runs the simulation half of a frame: resize check, gated step, edit
// application and pending bulk overwrite.
func (e *Engine) Update(now time.Time) error {
	e.trackFrame(now)

	size := core.Size{W: e.settings.Resolution, H: e.settings.Resolution}
	if e.swap.Size() != size {
		if err := e.reallocate(); err != nil {
			return err
		}
	}

	if e.running && e.gate.Ready(now) {
		e.step()
	}

	cur := e.swap.Current()
	n := e.edits.Drain(func(ed core.Edit) {
		cur.SetCell(ed.X, ed.Y, ed.Alive)
	})
	if n > 0 {
		e.stats.EditsApplied += uint64(n)
		e.observer.Edits(n)
	}

	if e.bulk != bulkNone {
		if err := e.applyBulk(cur); err != nil {
			return err
		}
	}
	return nil
}

// Draw runs the view pass onto dst. The surface size also becomes the
// viewport used to interpret pointer input.
func (e *Engine) Draw(dst Surface) error {
	b := dst.Bounds()
	e.mapper.SetViewport(b.Dx(), b.Dy())
	if err := e.backend.Draw(dst, e.swap.Current(), e.cam); err != nil {
		e.reportOnce("view", err)
		if !errors.Is(err, ErrPipelineUnavailable) {
			return fmt.Errorf("draw: %w", err)
		}
	}
	return nil
}

// Frame runs one complete iteration: Update followed by Draw.
func (e *Engine) Frame(now time.Time, dst Surface) error {
	if err := e.Update(now); err != nil {
		return err
	}
	return e.Draw(dst)
}

// Run drives the loop from a frame clock until ctx is cancelled or frames is
// closed. Settings received on updates are applied between frames; a nil
// channel disables them, and so does closing it.
func (e *Engine) Run(ctx context.Context, frames <-chan time.Time, dst Surface, updates <-chan core.Settings) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			e.ApplySettings(s)
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			e.DrainSettings(updates)
			if err := e.Frame(now, dst); err != nil {
				return err
			}
		}
	}
}

// DrainSettings applies every settings value waiting on ch without blocking.
func (e *Engine) DrainSettings(ch <-chan core.Settings) {
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return
			}
			e.ApplySettings(s)
		default:
			return
		}
	}
}

// ApplySettings replaces the settings after sanitizing them. A resolution
// change takes effect, and resets the grid, on the next Update.
func (e *Engine) ApplySettings(s core.Settings) {
	s = core.SanitizeSettings(s)
	if s == e.settings {
		return
	}
	if ce := e.log.Check(zap.DebugLevel, "settings applied"); ce != nil {
		params := s.Parameters()
		fields := make([]zap.Field, 0, len(params))
		for _, p := range params {
			fields = append(fields, zap.String(p.Key, p.Value))
		}
		ce.Write(fields...)
	}
	e.settings = s
	e.gate.SetInterval(s.TickInterval())
}

// EnqueueEdit queues a single-cell edit under device pixel (x, y).
func (e *Engine) EnqueueEdit(x, y float64, alive bool) {
	cx, cy := e.mapper.PointerToCell(x, y, e.cam, e.swap.Size())
	e.edits.Push(core.Edit{X: cx, Y: cy, Alive: alive})
}

// EnqueueCell queues an edit addressed directly in grid coordinates. It
// bypasses the pointer mapping, for tests and scripted setups.
func (e *Engine) EnqueueCell(x, y int, alive bool) {
	e.edits.Push(core.Edit{X: x, Y: y, Alive: alive})
}

// Pan moves the camera by a pointer delta in device pixels.
func (e *Engine) Pan(dx, dy float64) {
	e.cam = e.mapper.Pan(e.cam, dx, dy)
}

// Zoom applies one wheel notch; positive directions zoom out.
func (e *Engine) Zoom(direction float64) {
	e.cam = input.Zoom(e.cam, direction)
}

// TogglePlay pauses or resumes stepping and reports the new state. Drawing
// and edits continue while paused.
func (e *Engine) TogglePlay() bool {
	e.running = !e.running
	e.log.Debug("play toggled", zap.Bool("running", e.running))
	return e.running
}

// RequestRandomSeed schedules a random fill of the current grid.
func (e *Engine) RequestRandomSeed() { e.bulk = bulkRandom }

// RequestClear schedules killing every cell of the current grid.
func (e *Engine) RequestClear() { e.bulk = bulkClear }

// ReadCurrentFrame copies the current grid texture.
func (e *Engine) ReadCurrentFrame() (core.Frame, error) {
	size := e.swap.Size()
	f := core.Frame{W: size.W, H: size.H, Pix: make([]byte, 4*size.W*size.H)}
	if err := e.swap.Current().ReadPixels(f.Pix); err != nil {
		return core.Frame{}, fmt.Errorf("read current frame: %w", err)
	}
	return f, nil
}

// SetViewport records the surface size used to interpret pointer input.
func (e *Engine) SetViewport(w, h int) { e.mapper.SetViewport(w, h) }

// Running reports whether stepping is enabled.
func (e *Engine) Running() bool { return e.running }

// Camera returns the current camera.
func (e *Engine) Camera() core.Camera { return e.cam }

// SetCamera replaces the camera, clamping its zoom.
func (e *Engine) SetCamera(cam core.Camera) {
	cam.Zoom = core.ClampZoom(cam.Zoom)
	e.cam = cam
}

// Settings returns the active settings.
func (e *Engine) Settings() core.Settings { return e.settings }

// Size returns the dimensions of the current grid.
func (e *Engine) Size() core.Size { return e.swap.Size() }

// Stats returns the frame-loop counters.
func (e *Engine) Stats() Stats { return e.stats }

// PendingEdits reports the number of queued edits.
func (e *Engine) PendingEdits() int { return e.edits.Len() }

func (e *Engine) trackFrame(now time.Time) {
	if !e.lastFrame.IsZero() {
		e.stats.LastFrame = now.Sub(e.lastFrame)
	}
	e.lastFrame = now
	e.stats.Frames++
	e.observer.Frame(e.stats.LastFrame)
}

func (e *Engine) step() {
	if err := e.backend.Step(e.swap.Peek(), e.swap.Current(), e.settings.Tint); err != nil {
		e.reportOnce("step", err)
		e.gate.Undo()
		return
	}
	e.swap.Advance()
	e.stats.Steps++
	e.observer.Step()
}

// reallocate replaces the swapchain with cleared textures at the configured
// resolution. Live cells and queued edits are not carried over.
func (e *Engine) reallocate() error {
	size := core.Size{W: e.settings.Resolution, H: e.settings.Resolution}
	sc, err := core.NewSwapchain(core.DefaultSlots, size, e.backend.Allocate)
	if err != nil {
		return fmt.Errorf("allocate %dx%d swapchain: %w", size.W, size.H, err)
	}
	if e.swap != nil {
		if n := e.edits.Drain(func(core.Edit) {}); n > 0 {
			e.log.Debug("queued edits dropped on resize", zap.Int("edits", n))
		}
		for i := 0; i < e.swap.Len(); i++ {
			if d, ok := e.swap.Slot(i).(Disposer); ok {
				d.Dispose()
			}
		}
	}
	e.swap = sc
	e.stats.Reallocations++
	e.observer.Reallocated(size)
	e.log.Info("swapchain allocated", zap.Int("resolution", size.W), zap.Int("slots", sc.Len()))
	return nil
}

func (e *Engine) applyBulk(cur core.Target) error {
	size := cur.Size()
	var pix []byte
	switch e.bulk {
	case bulkRandom:
		pix = e.rng.Pixels(size.W, size.H)
	default:
		pix = core.ClearPixels(size.W, size.H)
	}
	op := e.bulk
	e.bulk = bulkNone
	if err := cur.Upload(pix); err != nil {
		return fmt.Errorf("%s overwrite: %w", op, err)
	}
	e.log.Debug("bulk overwrite applied", zap.Stringer("op", op), zap.Uint64("random_seeds", e.rng.Seeds()))
	return nil
}

func (e *Engine) reportOnce(pipeline string, err error) {
	if e.reported[pipeline] {
		return
	}
	e.reported[pipeline] = true
	e.log.Error("pipeline failed", zap.String("pipeline", pipeline), zap.Error(err))
}
