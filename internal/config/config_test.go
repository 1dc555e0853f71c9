package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong-life/internal/core"
)

func TestFromMap(t *testing.T) {
	base := core.DefaultSettings()
	s := FromMap(base, map[string]string{
		core.KeyResolution: "300",
		core.KeyTick:       "12.5",
		"tint":             "0.1, 0.2, 0.3",
		core.KeyTintB:      "1.7",
	})
	assert.Equal(t, 256, s.Resolution)
	assert.Equal(t, 12.5, s.TickMs)
	assert.Equal(t, core.Tint{R: 0.1, G: 0.2, B: 1}, s.Tint)
}

func TestFromMapKeepsBaseOnGarbage(t *testing.T) {
	base := core.DefaultSettings()
	s := FromMap(base, map[string]string{
		core.KeyResolution: "lots",
		core.KeyTick:       "",
		"tint":             "red",
	})
	assert.Equal(t, base, s)
	assert.Equal(t, base, FromMap(base, nil))
}

func TestParseTint(t *testing.T) {
	tint, err := ParseTint("1,0.5,0")
	require.NoError(t, err)
	assert.Equal(t, core.Tint{R: 1, G: 0.5}, tint)

	_, err = ParseTint("1,2")
	require.Error(t, err)
	_, err = ParseTint("1,x,2")
	require.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	base := core.DefaultSettings()
	s, err := Parse([]byte("resolution: 1000\ntint: [0.5, 0.5, 2]\n"), base)
	require.NoError(t, err)
	assert.Equal(t, 1024, s.Resolution)
	assert.Equal(t, base.TickMs, s.TickMs)
	assert.Equal(t, core.Tint{R: 0.5, G: 0.5, B: 1}, s.Tint)

	_, err = Parse([]byte("tint: [1]\n"), base)
	require.Error(t, err)
	_, err = Parse([]byte("resolution: [\n"), base)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := core.Settings{Resolution: 64, TickMs: 40, Tint: core.Tint{R: 0.25, G: 0.5, B: 0.75}}
	require.NoError(t, Save(path, want))

	got, err := Load(path, core.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), want)
	require.Error(t, err)
}

func TestWatcherPublishesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolution: 64\n"), 0o644))

	w, err := Watch(path, core.DefaultSettings(), nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("resolution: 8\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("resolution: 128\ntick_ms: 20\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-w.Updates():
			if s.Resolution != 128 {
				continue
			}
			assert.Equal(t, 20.0, s.TickMs)
			return
		case <-deadline:
			t.Fatal("no settings update received")
		}
	}
}

func TestWatcherCloseClosesUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Save(path, core.DefaultSettings()))
	w, err := Watch(path, core.DefaultSettings(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	for range w.Updates() {
	}
}
