package cheese

import "math"

// MaxPlacements caps the number of holes a single run may place.
const MaxPlacements = 1 << 24

// GenerateGrid returns the hole centres of the lattice over grid. Each
// axis is a half-open range min, min+delta, ... < max, so an axis holds
// ceil((max-min)/delta) positions. Points are ordered with x in the outer
// loop and y in the inner loop. A degenerate grid or a non-positive
// spacing yields no points.
func GenerateGrid(grid Rect, deltaX, deltaY float64) []Point {
	xs := arange(grid.Min.X, grid.Max.X, deltaX)
	ys := arange(grid.Min.Y, grid.Max.Y, deltaY)
	if len(xs) == 0 || len(ys) == 0 {
		return nil
	}
	pts := make([]Point, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			pts = append(pts, Pt(x, y))
		}
	}
	return pts
}

// GridSize returns the number of positions GenerateGrid produces on each
// axis without allocating them.
func GridSize(grid Rect, deltaX, deltaY float64) (nx, ny int) {
	return arangeLen(grid.Min.X, grid.Max.X, deltaX), arangeLen(grid.Min.Y, grid.Max.Y, deltaY)
}

func arangeLen(start, stop, step float64) int {
	if !(step > 0) || !(stop > start) {
		return 0
	}
	n := math.Ceil((stop - start) / step)
	if n > MaxPlacements {
		return MaxPlacements + 1
	}
	return int(n)
}

func arange(start, stop, step float64) []float64 {
	n := arangeLen(start, stop, step)
	if n == 0 || n > MaxPlacements {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// PlaceHoles copies template to every placement.
func PlaceHoles(template Polygon, placements []Point) PolygonSet {
	out := make(PolygonSet, len(placements))
	for i, at := range placements {
		out[i] = template.Transform(Translate(at.X, at.Y))
	}
	return out
}
