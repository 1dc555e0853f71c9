//go:build !ebiten

package app

import (
	"go.uber.org/zap"

	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
)

// Game is a placeholder for headless builds; it cannot open a window.
type Game struct{}

// New returns a stub Game.
func New(*engine.Engine, <-chan core.Settings, string, *zap.Logger) *Game { return &Game{} }

// Run always fails without the ebiten build tag.
func Run(*Game, string, int, int) error { return engine.ErrNoGraphicsContext }
