package app

import (
	"time"

	"go.uber.org/zap"

	"pingpong-life/internal/engine"
	"pingpong-life/internal/export"
	"pingpong-life/internal/ui"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePanel
	ActionTogglePlay
	ActionRandomSeed
	ActionClear
	ActionToggleMeter
	ActionSnapshot
	ActionToggleRecording
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionTogglePanel:     "toggle-panel",
	ActionTogglePlay:      "toggle-play",
	ActionRandomSeed:      "random-seed",
	ActionClear:           "clear",
	ActionToggleMeter:     "toggle-meter",
	ActionSnapshot:        "snapshot",
	ActionToggleRecording: "toggle-recording",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Session binds keyboard actions to the engine, the UI state and the
// exporters. It is shared by the windowed game and its tests.
type Session struct {
	Engine *engine.Engine
	Panel  *ui.Panel
	Meter  *ui.Meter
	OutDir string

	log      *zap.Logger
	now      func() time.Time
	recorder *export.Recorder
}

// NewSession returns a session writing exports to outDir.
func NewSession(e *engine.Engine, panel *ui.Panel, meter *ui.Meter, outDir string, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if outDir == "" {
		outDir = export.DefaultDir
	}
	return &Session{Engine: e, Panel: panel, Meter: meter, OutDir: outDir, log: log, now: time.Now}
}

// Do performs a. It reports true when the application should quit. Export
// failures are logged and do not stop the session.
func (s *Session) Do(a Action) (quit bool) {
	switch a {
	case ActionTogglePanel:
		if s.Panel != nil {
			s.Panel.Toggle()
		}
	case ActionTogglePlay:
		s.Engine.TogglePlay()
	case ActionRandomSeed:
		s.Engine.RequestRandomSeed()
	case ActionClear:
		s.Engine.RequestClear()
	case ActionToggleMeter:
		if s.Meter != nil {
			s.Meter.Toggle()
		}
	case ActionSnapshot:
		s.snapshot()
	case ActionToggleRecording:
		s.toggleRecording()
	case ActionQuit:
		s.finishRecording()
		return true
	}
	return false
}

// Recording reports whether frames are being captured for a GIF.
func (s *Session) Recording() bool { return s.recorder != nil }

// Capture appends the current grid to the active recording.
func (s *Session) Capture() {
	if s.recorder == nil {
		return
	}
	f, err := s.Engine.ReadCurrentFrame()
	if err != nil {
		s.log.Warn("recording frame dropped", zap.Error(err))
		return
	}
	s.recorder.Add(f)
}

func (s *Session) snapshot() {
	f, err := s.Engine.ReadCurrentFrame()
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return
	}
	path, err := export.SaveSnapshot(s.OutDir, f, "png", s.now())
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return
	}
	s.log.Info("snapshot saved", zap.String("path", path))
}

func (s *Session) toggleRecording() {
	if s.recorder != nil {
		s.finishRecording()
		return
	}
	s.recorder = export.NewRecorder(s.now())
	s.log.Info("recording started")
}

func (s *Session) finishRecording() {
	if s.recorder == nil {
		return
	}
	rec := s.recorder
	s.recorder = nil
	if rec.Len() == 0 {
		s.log.Info("recording discarded", zap.String("reason", "no frames"))
		return
	}
	path, err := rec.Save(s.OutDir)
	if err != nil {
		s.log.Error("recording failed", zap.Error(err))
		return
	}
	s.log.Info("recording saved", zap.String("path", path), zap.Int("frames", rec.Len()))
}
