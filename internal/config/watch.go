package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"pingpong-life/internal/core"
)

// Watcher reloads a settings file whenever it changes and publishes the
// result. Only the latest unread value is kept.
type Watcher struct {
	path string
	base core.Settings
	log  *zap.Logger

	fs   *fsnotify.Watcher
	out  chan core.Settings
	done chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are handled. Values are decoded on top of
// base.
func Watch(path string, base core.Settings, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch settings: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch settings: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch settings %s: %w", abs, err)
	}
	w := &Watcher{
		path: abs,
		base: base,
		log:  log.With(zap.String("settings", abs)),
		fs:   fw,
		out:  make(chan core.Settings, 1),
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers reloaded settings. The channel is closed by Close.
func (w *Watcher) Updates() <-chan core.Settings { return w.out }

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.out)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			s, err := Load(w.path, w.base)
			if err != nil {
				w.log.Warn("settings reload failed", zap.Error(err))
				continue
			}
			w.publish(s)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("settings watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) publish(s core.Settings) {
	w.log.Debug("settings reloaded", zap.Int("resolution", s.Resolution))
	select {
	case w.out <- s:
		return
	default:
	}
	// Drop the stale value; this goroutine is the only sender.
	select {
	case <-w.out:
	default:
	}
	w.out <- s
}
