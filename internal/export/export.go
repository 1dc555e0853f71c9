// Package export turns frames read back from the current grid texture into
// image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"pingpong-life/internal/core"
)

// DefaultDir is the folder snapshots and recordings are written to.
const DefaultDir = "output"

// ErrUnknownFormat is returned for snapshot formats other than png and bmp.
var ErrUnknownFormat = errors.New("unknown image format")

// Image converts a frame into an opaque image with grid row H-1 at the top,
// matching what the view shows at zoom 1.
func Image(f core.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		src := f.Pix[4*y*f.W : 4*(y+1)*f.W]
		dst := img.Pix[(f.H-1-y)*img.Stride:]
		copy(dst[:len(src)], src)
		for i := 3; i < len(src); i += 4 {
			dst[i] = 0xff
		}
	}
	return img
}

// Encode writes f to w in the given format ("png" or "bmp").
func Encode(w io.Writer, f core.Frame, format string) error {
	img := Image(f)
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// SaveSnapshot writes f into dir as <timestamp>_map.<format> and returns the
// path written.
func SaveSnapshot(dir string, f core.Frame, format string, now time.Time) (string, error) {
	format = strings.ToLower(format)
	if format != "png" && format != "bmp" {
		return "", fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_map.%s", now.Format("20060102_150405"), format))
	if err := writeFile(path, func(w io.Writer) error { return Encode(w, f, format) }); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(out); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
