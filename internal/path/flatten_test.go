package path

import (
	"math"
	"testing"
)

func square() []PathElement {
	return []PathElement{
		MoveTo{Point{0, 0}},
		LineTo{Point{1, 0}},
		LineTo{Point{1, 1}},
		LineTo{Point{0, 1}},
		LineTo{Point{0, 0}},
		Close{},
	}
}

func TestFlattenLines(t *testing.T) {
	rings := Flatten(square(), 0)
	if len(rings) != 1 {
		t.Fatalf("Flatten() returned %d rings, want 1", len(rings))
	}
	if got := len(rings[0]); got != 4 {
		t.Errorf("ring has %d vertices, want 4 (closing vertex dropped)", got)
	}
}

func TestFlattenMultipleSubpaths(t *testing.T) {
	elems := append(square(), square()...)
	rings := Flatten(elems, 0)
	if len(rings) != 2 {
		t.Fatalf("Flatten() returned %d rings, want 2", len(rings))
	}
}

func TestFlattenDropsDegenerate(t *testing.T) {
	elems := []PathElement{
		MoveTo{Point{0, 0}},
		LineTo{Point{1, 0}},
		LineTo{Point{1, 0}},
		Close{},
	}
	if rings := Flatten(elems, 0); len(rings) != 0 {
		t.Errorf("Flatten() = %v, want no rings for a two-vertex subpath", rings)
	}
}

func TestFlattenCubicStaysNearCircle(t *testing.T) {
	const r = 5.0
	const k = 0.5522847498307936
	o := r * k
	elems := []PathElement{
		MoveTo{Point{r, 0}},
		CubicTo{Point{r, o}, Point{o, r}, Point{0, r}},
		CubicTo{Point{-o, r}, Point{-r, o}, Point{-r, 0}},
		CubicTo{Point{-r, -o}, Point{-o, -r}, Point{0, -r}},
		CubicTo{Point{o, -r}, Point{r, -o}, Point{r, 0}},
		Close{},
	}

	tests := []struct {
		name      string
		tolerance float64
		minPoints int
	}{
		{"relative default", 0, 16},
		{"coarse", 0.5, 4},
		{"fine", 1e-4, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings := Flatten(elems, tt.tolerance)
			if len(rings) != 1 {
				t.Fatalf("Flatten() returned %d rings, want 1", len(rings))
			}
			ring := rings[0]
			if len(ring) < tt.minPoints {
				t.Errorf("ring has %d vertices, want at least %d", len(ring), tt.minPoints)
			}
			for _, p := range ring {
				d := math.Hypot(p.X, p.Y)
				// Bezier circle approximation deviates by ~0.03% of r.
				if math.Abs(d-r) > r*1e-3 {
					t.Errorf("vertex %v at radius %v, want %v", p, d, r)
				}
			}
			if ring[0] == ring[len(ring)-1] {
				t.Error("closing vertex repeated")
			}
		})
	}
}

func TestDistanceToLine(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"perpendicular", Point{1, 1}, Point{0, 0}, Point{2, 0}, 1},
		{"before segment", Point{-3, 4}, Point{0, 0}, Point{2, 0}, 5},
		{"after segment", Point{5, 4}, Point{0, 0}, Point{2, 0}, 5},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := distanceToLine(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("distanceToLine() = %v, want %v", got, tt.want)
			}
		})
	}
}
