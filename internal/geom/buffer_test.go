package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	withHole := box(0, 0, 10, 10)
	withHole.Holes = [][]Point{box(4, 4, 6, 6).Exterior}
	ell := Polygon{Exterior: []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}}

	tests := []struct {
		name  string
		in    []Polygon
		d     float64
		join  JoinStyle
		area  float64
		delta float64
	}{
		{"mitre square", []Polygon{box(0, 0, 10, 10)}, 2, JoinMitre, 196, 1e-6},
		{"clockwise input", []Polygon{{Exterior: reversed(box(0, 0, 10, 10).Exterior)}}, 2, JoinMitre, 196, 1e-6},
		{"bevel square", []Polygon{box(0, 0, 10, 10)}, 2, JoinBevel, 188, 1e-6},
		{"round square", []Polygon{box(0, 0, 10, 10)}, 2, JoinRound, 180 + 4*math.Pi, 0.15},
		{"hole shrinks", []Polygon{withHole}, 0.5, JoinMitre, 120, 1e-6},
		{"reflex corner", []Polygon{ell}, 0.5, JoinMitre, 8, 1e-6},
		{"merges neighbours", []Polygon{box(0, 0, 1, 1), box(3, 0, 4, 1)}, 1, JoinMitre, 18, 1e-6},
		{"zero distance", []Polygon{box(0, 0, 1, 1)}, 0, JoinMitre, 1, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Buffer(tt.in, tt.d, Style{Join: tt.join}, 1e-6)
			require.NoError(t, err)
			assert.InDelta(t, tt.area, TotalArea(got), tt.delta)
		})
	}

	t.Run("bounds", func(t *testing.T) {
		got, err := Buffer([]Polygon{box(0, 0, 10, 10)}, 2, Style{}, 1e-6)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Holes)
		b, _ := Bounds(got)
		assert.Equal(t, Box{Min: Point{-2, -2}, Max: Point{12, 12}}, b)
	})

	t.Run("hole closed", func(t *testing.T) {
		got, err := Buffer([]Polygon{withHole}, 2, Style{}, 1e-6)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Holes)
		assert.InDelta(t, 196, TotalArea(got), 1e-6)
	})
}

func TestWiden(t *testing.T) {
	straight := []Point{{0, 0}, {10, 0}}
	elbow := []Point{{0, 0}, {10, 0}, {10, 10}}
	tests := []struct {
		name  string
		pts   []Point
		style Style
		area  float64
		delta float64
	}{
		{"flat", straight, Style{Cap: CapFlat}, 20, 1e-6},
		{"square", straight, Style{Cap: CapSquare}, 24, 1e-6},
		{"round", straight, Style{Cap: CapRound}, 20 + math.Pi, 0.05},
		{"mitre elbow", elbow, Style{Join: JoinMitre}, 40, 1e-6},
		{"bevel elbow", elbow, Style{Join: JoinBevel}, 39.5, 1e-6},
		{"right turn", []Point{{0, 0}, {10, 0}, {10, -10}}, Style{Join: JoinMitre}, 40, 1e-6},
		{"repeated points", []Point{{0, 0}, {0, 0}, {10, 0}, {10, 0}}, Style{}, 20, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Widen([]Line{{Points: tt.pts, Width: 2}}, tt.style, 1e-6)
			require.NoError(t, err)
			assert.InDelta(t, tt.area, TotalArea(got), tt.delta)
		})
	}

	t.Run("degenerate", func(t *testing.T) {
		got, err := Widen([]Line{
			{Points: []Point{{1, 1}}, Width: 2},
			{Points: straight, Width: 0},
		}, Style{}, 1e-6)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDisc(t *testing.T) {
	d := disc(Point{5, 5}, 2, 0.01)
	for _, p := range d.Exterior {
		assert.GreaterOrEqual(t, math.Hypot(p.X-5, p.Y-5), 2.0)
	}
	assert.Greater(t, Area(d), math.Pi*4)
	assert.InEpsilon(t, math.Pi*4, Area(d), 0.01)
}
