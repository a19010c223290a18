package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/cheese"
)

var copper = color.RGBA{R: 0xb8, G: 0x73, B: 0x33, A: 0xff}

func cheeseKey(chip string) cheese.LayerKey {
	return cheese.LayerKey{Chip: chip, Layer: 1, Role: cheese.RoleCheese}
}

func TestRenderHoleIsEmpty(t *testing.T) {
	plane := cheese.Polygon{
		Exterior: cheese.R(0, 0, 100, 100).Polygon().Exterior,
		// Same orientation as the exterior; Render normalizes it.
		Holes: [][]cheese.Point{cheese.R(40, 40, 60, 60).Polygon().Exterior},
	}
	layers := cheese.NewLayers()
	layers.Put(cheeseKey("main"), 100, cheese.PolygonSet{plane})

	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Margin = 100, 100, 0
	img, err := Render(layers, opts)
	require.NoError(t, err)

	assert.Equal(t, copper, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(50, 50))
}

func TestRenderFlipsY(t *testing.T) {
	layers := cheese.NewLayers()
	layers.Put(cheeseKey("main"), 100, cheese.PolygonSet{
		cheese.R(0, 0, 100, 50).Polygon(),
		cheese.R(0, 90, 10, 100).Polygon(),
	})

	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Margin = 100, 100, 0
	img, err := Render(layers, opts)
	require.NoError(t, err)

	assert.Equal(t, copper, img.RGBAAt(50, 75))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, img.RGBAAt(50, 25))
	assert.Equal(t, copper, img.RGBAAt(5, 5))
}

func TestRenderChipFilter(t *testing.T) {
	layers := cheese.NewLayers()
	layers.Put(cheeseKey("a"), 100, cheese.PolygonSet{cheese.R(0, 0, 10, 10).Polygon()})
	layers.Put(cheeseKey("b"), 100, cheese.PolygonSet{cheese.R(0, 0, 10, 10).Polygon()})

	opts := DefaultOptions()
	opts.Chip = "c"
	_, err := Render(layers, opts)
	assert.ErrorIs(t, err, ErrEmpty)

	opts.Chip = "a"
	_, err = Render(layers, opts)
	assert.NoError(t, err)
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(cheese.NewLayers(), DefaultOptions())
	assert.ErrorIs(t, err, ErrEmpty)

	opts := DefaultOptions()
	opts.Width = 20
	_, err = Render(cheese.NewLayers(), opts)
	assert.Error(t, err)
}

func TestWritePNGCaption(t *testing.T) {
	layers := cheese.NewLayers()
	layers.Put(cheeseKey("main"), 100, cheese.PolygonSet{cheese.R(0, 0, 1e-3, 1e-3).Polygon()})

	opts := DefaultOptions()
	opts.Width, opts.Height = 200, 200
	opts.Caption = "main: 16 holes"

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, layers, opts))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	dark := false
	for y := opts.Height - opts.Margin; y < opts.Height && !dark; y++ {
		for x := opts.Margin; x < opts.Margin+100; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x4000 {
				dark = true
				break
			}
		}
	}
	assert.True(t, dark, "caption not drawn")
}
