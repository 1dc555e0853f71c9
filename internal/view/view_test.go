package view

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong-life/internal/core"
)

func TestDrawPlacesOriginCellAtCentre(t *testing.T) {
	grid := core.NewGrid(4, 4)
	grid.SetCell(0, 0, true)
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))

	var p Pipeline
	require.NoError(t, p.Draw(dst, grid, core.DefaultCamera()))

	for sy := 0; sy < 64; sy++ {
		for sx := 0; sx < 64; sx++ {
			c := dst.RGBAAt(sx, sy)
			require.Equal(t, uint8(0xff), c.A, "pixel (%d,%d) must be opaque", sx, sy)
			lit := sx >= 32 && sx < 48 && sy >= 16 && sy < 32
			if lit {
				require.Equal(t, uint8(0xff), c.R, "pixel (%d,%d)", sx, sy)
			} else {
				require.Zero(t, c.R, "pixel (%d,%d)", sx, sy)
			}
		}
	}
}

func TestDrawShowsFadingTrail(t *testing.T) {
	grid := core.NewGrid(2, 2)
	pix := grid.Pix()
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 10, 20, 30, 0
	}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))

	var p Pipeline
	require.NoError(t, p.Draw(dst, grid, core.DefaultCamera()))
	c := dst.RGBAAt(3, 3)
	assert.Equal(t, [4]uint8{10, 20, 30, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})
}

func TestMinificationFilters(t *testing.T) {
	grid := core.NewGrid(256, 256)
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			grid.SetCell(x, y, (x+y)%2 == 0)
		}
	}
	cam := core.Camera{Zoom: 2}
	require.Greater(t, CellsPerPixel(16, cam, grid.Size()), 1.0)

	nearest := image.NewRGBA(image.Rect(0, 0, 16, 16))
	require.NoError(t, (&Pipeline{Nearest: true}).Draw(nearest, grid, cam))
	for i := 0; i < len(nearest.Pix); i += 4 {
		assert.Contains(t, []uint8{0, 0xff}, nearest.Pix[i])
	}

	linear := image.NewRGBA(image.Rect(0, 0, 16, 16))
	require.NoError(t, (&Pipeline{}).Draw(linear, grid, cam))
	for i := 0; i < len(linear.Pix); i += 4 {
		assert.NotContains(t, []uint8{0, 0xff}, linear.Pix[i], "checkerboard blends when minified")
		assert.Equal(t, uint8(0xff), linear.Pix[i+3])
	}
}

func TestCellAtWraps(t *testing.T) {
	size := core.Size{W: 8, H: 8}
	cam := core.Camera{X: 3, Y: -5, Zoom: 1}
	x, y := CellAt(10.5, 10.5, 100, 100, cam, size)
	assert.True(t, x >= 0 && x < 8)
	assert.True(t, y >= 0 && y < 8)
}

func TestDrawRejectsNil(t *testing.T) {
	var p Pipeline
	require.ErrorIs(t, p.Draw(nil, core.NewGrid(1, 1), core.DefaultCamera()), ErrUnsupportedSurface)
}
