// Package preview rasterizes a cheesed layer set to an image for a quick
// visual check of hole placement and keep-out regions.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/cheese"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("preview: no polygons to draw")

// Palette maps roles to fill colours. Roles missing from the palette are
// not drawn.
type Palette map[cheese.Role]color.NRGBA

// DefaultPalette draws the ground in copper, the keep-out in translucent
// red and holes in dark grey.
func DefaultPalette() Palette {
	return Palette{
		cheese.RoleGround:     {R: 0xb8, G: 0x73, B: 0x33, A: 0x60},
		cheese.RoleKeepout:    {R: 0xe0, G: 0x20, B: 0x20, A: 0x50},
		cheese.RoleCheeseDiff: {R: 0x30, G: 0x30, B: 0x30, A: 0xff},
		cheese.RoleCheese:     {R: 0xb8, G: 0x73, B: 0x33, A: 0xff},
	}
}

// drawOrder paints later roles on top.
var drawOrder = []cheese.Role{
	cheese.RoleGround,
	cheese.RoleCheese,
	cheese.RoleCheeseDiff,
	cheese.RoleKeepout,
}

// Options controls the rendered image.
type Options struct {
	Width, Height int

	// Margin is the empty border around the drawing, in pixels.
	Margin int

	// Chip limits the image to one chip; empty draws every chip.
	Chip string

	// Caption is drawn in the lower left corner.
	Caption string

	Background color.Color
	Palette    Palette
}

// DefaultOptions returns an 800x800 white canvas with the default palette.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Margin:     16,
		Background: color.White,
		Palette:    DefaultPalette(),
	}
}

// Render draws layers into a new image. Y grows upward in layout space
// and downward in the image, so the drawing is flipped.
func Render(layers *cheese.Layers, opts Options) (*image.RGBA, error) {
	if opts.Width <= 2*opts.Margin || opts.Height <= 2*opts.Margin {
		return nil, fmt.Errorf("preview: image %dx%d too small for margin %d", opts.Width, opts.Height, opts.Margin)
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}

	byRole := make(map[cheese.Role][]*cheese.Group)
	var bounds cheese.Rect
	var found bool
	for _, g := range layers.Groups() {
		if opts.Chip != "" && g.Key.Chip != opts.Chip {
			continue
		}
		if _, ok := opts.Palette[g.Key.Role]; !ok {
			continue
		}
		b, ok := g.Polygons.Bounds()
		if !ok {
			continue
		}
		if found {
			bounds = bounds.Union(b)
		} else {
			bounds, found = b, true
		}
		byRole[g.Key.Role] = append(byRole[g.Key.Role], g)
	}
	if !found || bounds.Empty() {
		return nil, ErrEmpty
	}

	m := fit(bounds, opts)
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	r := vector.NewRasterizer(opts.Width, opts.Height)
	for _, role := range drawOrder {
		groups := byRole[role]
		if len(groups) == 0 {
			continue
		}
		r.Reset(opts.Width, opts.Height)
		r.DrawOp = draw.Over
		for _, g := range groups {
			for _, p := range g.Polygons.Normalized() {
				addRing(r, m, p.Exterior)
				for _, h := range p.Holes {
					addRing(r, m, h)
				}
			}
		}
		r.Draw(img, img.Bounds(), image.NewUniform(opts.Palette[role]), image.Point{})
	}

	if opts.Caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(opts.Margin, opts.Height-opts.Margin/2),
		}
		d.DrawString(opts.Caption)
	}

	cheese.Logger().Debug("preview rendered",
		"width", opts.Width, "height", opts.Height, "bounds", bounds)
	return img, nil
}

// fit maps bounds into the image area inside the margin, keeping the
// aspect ratio and flipping Y.
func fit(bounds cheese.Rect, opts Options) cheese.Matrix {
	w := float64(opts.Width - 2*opts.Margin)
	h := float64(opts.Height - 2*opts.Margin)
	s := min(w/bounds.Width(), h/bounds.Height())
	ox := float64(opts.Margin) + (w-s*bounds.Width())/2
	oy := float64(opts.Margin) + (h-s*bounds.Height())/2
	return cheese.Translate(ox, float64(opts.Height)-oy).
		Multiply(cheese.Scale(s, -s)).
		Multiply(cheese.Translate(-bounds.Min.X, -bounds.Min.Y))
}

func addRing(r *vector.Rasterizer, m cheese.Matrix, ring []cheese.Point) {
	if len(ring) < 3 {
		return
	}
	p := m.TransformPoint(ring[0])
	r.MoveTo(float32(p.X), float32(p.Y))
	for _, pt := range ring[1:] {
		p = m.TransformPoint(pt)
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
}

// WritePNG renders layers and encodes the image as PNG.
func WritePNG(w io.Writer, layers *cheese.Layers, opts Options) error {
	img, err := Render(layers, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders layers to a PNG file.
func SavePNG(path string, layers *cheese.Layers, opts Options) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return WritePNG(f, layers, opts)
}
