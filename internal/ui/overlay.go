//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the frame meter and the paused indicator.
type Overlay struct {
	Meter
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay with the meter hidden.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw paints the readout in the top-left corner. The paused indicator is
// shown even when the meter is hidden.
func (o *Overlay) Draw(screen *ebiten.Image, running bool) {
	if o == nil {
		return
	}
	var label string
	switch {
	case o.Visible():
		label = o.Label(running)
	case !running:
		label = "PAUSED"
	default:
		return
	}
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()+12), float64(bounds.Dy()+10))
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(color.RGBA{A: 160})
	screen.DrawImage(o.pixel, op)

	text.Draw(screen, label, face, 10, 9+bounds.Dy(), color.RGBA{R: 235, G: 235, B: 240, A: 255})
}
