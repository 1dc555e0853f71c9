//go:build ebiten

// Package render is the GPU backend: grid textures live in ebiten images and
// both passes run as Kage shaders.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"pingpong-life/internal/core"
	"pingpong-life/internal/engine"
	"pingpong-life/internal/view"
)

var errForeignTarget = errors.New("render: target was not allocated by this backend")

// Texture is a grid texture held in GPU memory.
type Texture struct {
	w, h int
	img  *ebiten.Image
}

var (
	_ core.Target     = (*Texture)(nil)
	_ engine.Disposer = (*Texture)(nil)
)

// NewTexture allocates a cleared w*h texture outside the shared atlas.
func NewTexture(w, h int) *Texture {
	img := ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
	return &Texture{w: w, h: h, img: img}
}

// Image exposes the backing image.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Size returns the texture dimensions.
func (t *Texture) Size() core.Size { return core.Size{W: t.w, H: t.h} }

// Clear sets every texel to the cleared dead state.
func (t *Texture) Clear() { t.img.Clear() }

// SetCell writes a single texel. Coordinates wrap.
func (t *Texture) SetCell(x, y int, alive bool) {
	x, y = ((x%t.w)+t.w)%t.w, ((y%t.h)+t.h)%t.h
	c := color.RGBA{}
	if alive {
		c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	t.img.Set(x, y, c)
}

// Upload replaces the whole texture.
func (t *Texture) Upload(pix []byte) error {
	if len(pix) != 4*t.w*t.h {
		return fmt.Errorf("upload %dx%d: %w", t.w, t.h, core.ErrSizeMismatch)
	}
	t.img.WritePixels(pix)
	return nil
}

// ReadPixels copies the texture back to the CPU.
func (t *Texture) ReadPixels(dst []byte) error {
	if len(dst) != 4*t.w*t.h {
		return fmt.Errorf("read %dx%d: %w", t.w, t.h, core.ErrSizeMismatch)
	}
	t.img.ReadPixels(dst)
	return nil
}

// Dispose releases the GPU image.
func (t *Texture) Dispose() { t.img.Dispose() }

// Backend implements engine.Backend with Kage shaders. A shader that failed to
// compile is left nil and its pass reports engine.ErrPipelineUnavailable.
type Backend struct {
	log  *zap.Logger
	step *ebiten.Shader
	view *ebiten.Shader

	// Nearest disables bilinear filtering when the grid is minified.
	Nearest bool

	quad    [4]ebiten.Vertex
	indices []uint16
}

var _ engine.Backend = (*Backend)(nil)

// NewBackend compiles both passes. Compile failures are logged and leave the
// corresponding pass unavailable rather than failing construction.
func NewBackend(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{log: log, indices: []uint16{0, 1, 2, 1, 2, 3}}
	var err error
	if b.step, err = ebiten.NewShader(StepShaderSource()); err != nil {
		log.Error("step shader failed to compile", zap.Error(err))
		b.step = nil
	}
	if b.view, err = ebiten.NewShader(ViewShaderSource()); err != nil {
		log.Error("view shader failed to compile", zap.Error(err))
		b.view = nil
	}
	return b
}

// Allocate creates a cleared texture.
func (b *Backend) Allocate(size core.Size) (core.Target, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("allocate %dx%d: %w", size.W, size.H, core.ErrSizeMismatch)
	}
	return NewTexture(size.W, size.H), nil
}

// Step renders the next generation of src into dst.
func (b *Backend) Step(dst, src core.Target, tint core.Tint) error {
	if b.step == nil {
		return engine.ErrPipelineUnavailable
	}
	d, ok := dst.(*Texture)
	if !ok {
		return errForeignTarget
	}
	s, ok := src.(*Texture)
	if !ok {
		return errForeignTarget
	}
	if d.Size() != s.Size() {
		return fmt.Errorf("step: %w", core.ErrSizeMismatch)
	}
	op := &ebiten.DrawRectShaderOptions{Blend: ebiten.BlendCopy}
	op.Images[0] = s.img
	op.Uniforms = map[string]any{
		"Tint": []float32{float32(tint.R), float32(tint.G), float32(tint.B)},
	}
	d.img.DrawRectShader(d.w, d.h, b.step, op)
	return nil
}

// Draw paints src onto dst, which must be an *ebiten.Image.
func (b *Backend) Draw(dst engine.Surface, src core.Target, cam core.Camera) error {
	if b.view == nil {
		return engine.ErrPipelineUnavailable
	}
	screen, ok := dst.(*ebiten.Image)
	if !ok {
		return view.ErrUnsupportedSurface
	}
	tex, ok := src.(*Texture)
	if !ok {
		return errForeignTarget
	}
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	linear := float32(0)
	if !b.Nearest && view.CellsPerPixel(h, cam, tex.Size()) > 1 {
		linear = 1
	}

	// The quad covers the whole surface. The shader derives texture
	// coordinates from dstPos, so source coordinates only bound the read.
	x0, y0 := float32(bounds.Min.X), float32(bounds.Min.Y)
	x1, y1 := float32(bounds.Max.X), float32(bounds.Max.Y)
	sw, sh := float32(tex.w), float32(tex.h)
	b.quad[0] = ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	b.quad[1] = ebiten.Vertex{DstX: x1, DstY: y0, SrcX: sw, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	b.quad[2] = ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: sh, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}
	b.quad[3] = ebiten.Vertex{DstX: x1, DstY: y1, SrcX: sw, SrcY: sh, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}

	op := &ebiten.DrawTrianglesShaderOptions{Blend: ebiten.BlendCopy}
	op.Images[0] = tex.img
	op.Uniforms = map[string]any{
		"Camera":   []float32{float32(cam.X), float32(cam.Y)},
		"Zoom":     float32(cam.Zoom),
		"Viewport": []float32{float32(w), float32(h)},
		"Linear":   linear,
	}
	screen.DrawTrianglesShader(b.quad[:], b.indices, b.view, op)
	return nil
}
