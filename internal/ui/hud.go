//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the settings panel over the right edge of the viewport.
type HUD struct {
	*Panel
	img   *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD constructs a HUD for target with the given panel width.
func NewHUD(target SettingsTarget, width int) *HUD {
	h := &HUD{Panel: NewPanel(target, width)}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Update handles clicks on the panel. It reports whether the cursor is over
// the visible panel, in which case the click must not reach the grid.
func (h *HUD) Update(screenW, screenH int) bool {
	if h == nil || !h.Visible() {
		return false
	}
	h.Refresh()
	offset := screenW - h.Width()
	mx, my := ebiten.CursorPosition()
	if !h.Contains(mx, my, offset, screenH) {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.Click(mx, my, offset)
	}
	return true
}

// Draw paints the panel anchored to the right edge of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.Visible() || h.Width() <= 0 {
		return
	}
	b := screen.Bounds()
	height := b.Dy()
	if h.img == nil || h.img.Bounds().Dy() != height {
		if h.img != nil {
			h.img.Dispose()
		}
		h.img = ebiten.NewImage(h.Width(), height)
	}
	h.img.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 230})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(b.Max.X-h.Width()), float64(b.Min.Y))
	screen.DrawImage(h.img, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.img, "Settings", face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		st := &h.controls[i]
		y := st.top + labelBaseline
		fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		text.Draw(h.img, st.control.Label, face, panelPadding, y, fg)

		bounds := text.BoundString(face, st.text)
		text.Draw(h.img, st.text, face, st.minusRect.Min.X-buttonGap-bounds.Dx(), y, fg)

		h.drawButton(st.minusRect, "-", h.CanAdjust(i, -1))
		h.drawButton(st.plusRect, "+", h.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.img.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.img, label, face, x, y, fg)
}
