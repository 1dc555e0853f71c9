package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"path/filepath"
	"time"

	"pingpong-life/internal/core"
)

// FrameDelay is the delay between recorded frames in hundredths of a second,
// roughly 60 frames per second.
const FrameDelay = 2

// Recorder accumulates frames into an animated GIF.
type Recorder struct {
	started time.Time
	frames  []*image.Paletted
	delays  []int
}

// NewRecorder starts a recording at now.
func NewRecorder(now time.Time) *Recorder {
	return &Recorder{started: now}
}

// Add appends a frame. Frames of differing sizes are accepted; each is
// quantized to the Plan 9 palette so trail colours survive.
func (r *Recorder) Add(f core.Frame) {
	src := Image(f)
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	r.frames = append(r.frames, dst)
	r.delays = append(r.delays, FrameDelay)
}

// Len reports the number of recorded frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Encode writes the recording as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("encode recording: no frames")
	}
	return gif.EncodeAll(w, &gif.GIF{Image: r.frames, Delay: r.delays, LoopCount: 0})
}

// Save writes the recording into dir as <start timestamp>_life.gif and
// returns the path written.
func (r *Recorder) Save(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_life.gif", r.started.Format("20060102_150405")))
	if err := writeFile(path, r.Encode); err != nil {
		return "", err
	}
	return path, nil
}
