//go:build ebiten

package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
)

func TestShadersCompile(t *testing.T) {
	_, err := ebiten.NewShader(StepShaderSource())
	require.NoError(t, err)
	_, err = ebiten.NewShader(ViewShaderSource())
	require.NoError(t, err)

	obs, logs := observer.New(zapcore.ErrorLevel)
	b := NewBackend(zap.New(obs))
	require.NotNil(t, b.step)
	require.NotNil(t, b.view)
	require.Zero(t, logs.Len())
}

func TestBackendRejectsForeignTargets(t *testing.T) {
	b := &Backend{}
	require.ErrorIs(t, b.Step(nil, nil, core.Tint{}), engine.ErrPipelineUnavailable)
	require.ErrorIs(t, b.Draw(nil, nil, core.DefaultCamera()), engine.ErrPipelineUnavailable)
}
