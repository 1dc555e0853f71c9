//go:build ebiten

package app

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
	"pingpong-life/internal/ui"
)

// PanelWidth is the width of the settings panel in device pixels.
const PanelWidth = 260

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyO, ActionTogglePanel},
	{ebiten.KeyEscape, ActionTogglePanel},
	{ebiten.KeySpace, ActionTogglePlay},
	{ebiten.KeyR, ActionRandomSeed},
	{ebiten.KeyC, ActionClear},
	{ebiten.KeyM, ActionToggleMeter},
	{ebiten.KeyP, ActionSnapshot},
	{ebiten.KeyG, ActionToggleRecording},
	{ebiten.KeyQ, ActionQuit},
}

// Game adapts the engine to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	session *Session
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *zap.Logger
	updates <-chan core.Settings

	w, h      int
	panning   bool
	lastX     int
	lastY     int
	drawError bool
}

// New constructs a Game. updates may be nil when no settings file is watched.
func New(eng *engine.Engine, updates <-chan core.Settings, outDir string, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		eng:     eng,
		hud:     ui.NewHUD(eng, PanelWidth),
		overlay: ui.NewOverlay(),
		log:     log,
		updates: updates,
	}
	g.session = NewSession(eng, g.hud.Panel, &g.overlay.Meter, outDir, log)
	return g
}

// Update handles input and advances the engine by one frame.
func (g *Game) Update() error {
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) && g.session.Do(ka.action) {
			return ebiten.Termination
		}
	}

	overPanel := g.hud.Update(g.w, g.h)
	g.handlePointer(overPanel)

	now := time.Now()
	g.overlay.Observe(now)
	g.eng.DrainSettings(g.updates)
	if err := g.eng.Update(now); err != nil {
		return err
	}
	g.session.Capture()
	return nil
}

func (g *Game) handlePointer(overPanel bool) {
	x, y := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if g.panning {
			g.eng.Pan(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.panning = true
	} else {
		g.panning = false
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.eng.Zoom(-wy)
	}

	if overPanel {
		return
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.eng.EnqueueEdit(float64(x), float64(y), true)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.eng.EnqueueEdit(float64(x), float64(y), false)
	}
}

// Draw renders the grid and the UI layers.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.eng.Draw(screen); err != nil && !g.drawError {
		g.drawError = true
		g.log.Error("draw failed", zap.Error(err))
	}
	g.hud.Draw(screen)
	g.overlay.Draw(screen, g.eng.Running())
}

// Layout uses the window size as the logical screen size so one cell edge
// maps to whole device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	g.eng.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the game ends.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
