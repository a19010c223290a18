package cheese

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingExtent(t *testing.T) {
	w, h := Rectangle{Width: 3, Height: 7}.BoundingExtent()
	assert.Equal(t, 3.0, w)
	assert.Equal(t, 7.0, h)

	w, h = Circle{Radius: 2.5}.BoundingExtent()
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 5.0, h)
}

func TestShapeFor(t *testing.T) {
	assert.Equal(t, Rectangle{1, 2}, ShapeFor(ShapeRectangle, 1, 2, 3))
	assert.Equal(t, Circle{3}, ShapeFor(ShapeCircle, 1, 2, 3))
	assert.Nil(t, ShapeFor(ShapeKind(2), 1, 2, 3))
	assert.Equal(t, "ShapeKind(7)", ShapeKind(7).String())
}

func TestTemplateRectangle(t *testing.T) {
	p, err := Template(Rectangle{Width: 10, Height: 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, []Point{{-5, -2}, {5, -2}, {5, 2}, {-5, 2}}, p.Exterior)
	assert.Empty(t, p.Holes)
	assert.InDelta(t, 40, p.Area(), 1e-12)
}

func TestTemplateCircle(t *testing.T) {
	const r = 25e-6
	p, err := Template(Circle{Radius: r}, 0)
	require.NoError(t, err)
	require.Greater(t, len(p.Exterior), 16)

	for _, v := range p.Exterior {
		assert.InDelta(t, r, math.Hypot(v.X, v.Y), r*1e-3)
	}
	assert.InDelta(t, math.Pi*r*r, p.Area(), math.Pi*r*r*1e-2)

	b := p.Bounds()
	assert.InDelta(t, -r, b.Min.X, r*1e-9)
	assert.InDelta(t, r, b.Max.X, r*1e-9)
}

func TestTemplateCoarseTolerance(t *testing.T) {
	fine, err := Template(Circle{Radius: 1}, 1e-5)
	require.NoError(t, err)
	coarse, err := Template(Circle{Radius: 1}, 0.05)
	require.NoError(t, err)
	assert.Greater(t, len(fine.Exterior), len(coarse.Exterior))
}

func TestTemplateUnsupported(t *testing.T) {
	_, err := Template(nil, 0)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}
