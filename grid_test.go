package cheese

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestGenerateGridCoverage(t *testing.T) {
	tests := []struct {
		name   string
		grid   Rect
		dx, dy float64
	}{
		{"exact multiple", R(0, 0, 100, 100), 20, 20},
		{"remainder", R(0, 0, 101, 99), 20, 20},
		{"offset origin", R(-35, 12.5, 40, 80), 7.5, 3},
		{"single cell", R(0, 0, 1, 1), 5, 5},
		{"fractional step", R(0, 0, 1, 1), 0.1, 0.3},
		{"quarter steps", R(0.25, 0.5, 8.25, 6.5), 0.5, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := int(math.Ceil((tt.grid.Max.X-tt.grid.Min.X)/tt.dx)) *
				int(math.Ceil((tt.grid.Max.Y-tt.grid.Min.Y)/tt.dy))
			pts := GenerateGrid(tt.grid, tt.dx, tt.dy)
			assert.Len(t, pts, want)

			nx, ny := GridSize(tt.grid, tt.dx, tt.dy)
			assert.Equal(t, want, nx*ny)

			for _, p := range pts {
				assert.GreaterOrEqual(t, p.X, tt.grid.Min.X)
				assert.Less(t, p.X, tt.grid.Max.X)
				assert.GreaterOrEqual(t, p.Y, tt.grid.Min.Y)
				assert.Less(t, p.Y, tt.grid.Max.Y)
			}
		})
	}
}

func TestGenerateGridOrder(t *testing.T) {
	got := GenerateGrid(R(0, 0, 30, 20), 10, 10)
	want := []Point{
		{0, 0}, {0, 10},
		{10, 0}, {10, 10},
		{20, 0}, {20, 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateGrid() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateGridDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		grid   Rect
		dx, dy float64
	}{
		{"inverted x", R(10, 0, 0, 10), 1, 1},
		{"inverted y", R(0, 10, 10, 0), 1, 1},
		{"zero width", R(5, 0, 5, 10), 1, 1},
		{"zero spacing", R(0, 0, 10, 10), 0, 1},
		{"negative spacing", R(0, 0, 10, 10), 1, -1},
		{"nan spacing", R(0, 0, 10, 10), math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, GenerateGrid(tt.grid, tt.dx, tt.dy))
		})
	}
}

func TestGenerateGridChipScenario(t *testing.T) {
	cfg := Config{Bounds: R(0, 0, 100, 100), EdgeNoCheese: 0}
	pts := GenerateGrid(cfg.GridRect(), 20, 20)
	assert.Len(t, pts, 25)
	assert.Equal(t, Pt(0, 0), pts[0])
	assert.Equal(t, Pt(0, 20), pts[1])
	assert.Equal(t, Pt(80, 80), pts[24])
}

func TestPlaceHoles(t *testing.T) {
	template := Rectangle{Width: 2, Height: 2}.Path().Rings(0)[0]
	holes := PlaceHoles(Polygon{Exterior: template}, []Point{{10, 0}, {0, 10}})
	assert.Len(t, holes, 2)
	assert.Equal(t, R(9, -1, 11, 1), holes[0].Bounds())
	assert.Equal(t, R(-1, 9, 1, 11), holes[1].Bounds())
	assert.InDelta(t, 8, holes.Area(), 1e-12)
}
