// Package geom adapts the simplefeatures overlay engine to the polygon
// representation used by the cheesing pipeline.
//
// Polygons are kept as open rings (the closing vertex is implied). All
// Boolean operations snap their inputs to the given precision before
// handing them to the engine, and decompose the engine's result back into
// plain polygons; degenerate line or point fragments are discarded.
package geom

import (
	"errors"
	"math"
)

// ErrBoolean is returned when the overlay engine rejects its input or
// fails to compute a result.
var ErrBoolean = errors.New("geom: boolean operation failed")

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Polygon is an exterior ring with optional interior rings (holes).
type Polygon struct {
	Exterior []Point
	Holes    [][]Point
}

// Box describes an axis-aligned bounding box.
type Box struct {
	Min, Max Point
}

// RingArea returns the signed area of an open ring, positive when the
// ring winds counter-clockwise.
func RingArea(ring []Point) float64 {
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		p0, p1 := ring[i], ring[(i+1)%n]
		area += 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
	}
	return area
}

// Area returns the unsigned area of the polygon, holes excluded.
func Area(p Polygon) float64 {
	a := math.Abs(RingArea(p.Exterior))
	for _, h := range p.Holes {
		a -= math.Abs(RingArea(h))
	}
	return a
}

// TotalArea sums Area over ps.
func TotalArea(ps []Polygon) float64 {
	var a float64
	for _, p := range ps {
		a += Area(p)
	}
	return a
}

// Orient returns p with a counter-clockwise exterior and clockwise holes.
func Orient(p Polygon) Polygon {
	out := Polygon{Exterior: p.Exterior}
	if RingArea(out.Exterior) < 0 {
		out.Exterior = reversed(out.Exterior)
	}
	for _, h := range p.Holes {
		if RingArea(h) > 0 {
			h = reversed(h)
		}
		out.Holes = append(out.Holes, h)
	}
	return out
}

func reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// RingBounds returns the bounding box of a ring.
func RingBounds(ring []Point) Box {
	b := Box{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range ring {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Bounds returns the bounding box of a polygon set. ok is false when the
// set has no vertices.
func Bounds(ps []Polygon) (b Box, ok bool) {
	b = Box{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range ps {
		if len(p.Exterior) == 0 {
			continue
		}
		rb := RingBounds(p.Exterior)
		b = b.Union(rb)
		ok = true
	}
	return b, ok
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Overlaps reports whether the boxes share any point, boundaries included.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Snap rounds every coordinate to a multiple of precision and drops rings
// that collapse to zero area. A non-positive precision disables snapping.
func Snap(ps []Polygon, precision float64) []Polygon {
	if precision <= 0 {
		return ps
	}
	out := make([]Polygon, 0, len(ps))
	for _, p := range ps {
		ext := snapRing(p.Exterior, precision)
		if ext == nil {
			continue
		}
		sp := Polygon{Exterior: ext}
		for _, h := range p.Holes {
			if sh := snapRing(h, precision); sh != nil {
				sp.Holes = append(sp.Holes, sh)
			}
		}
		out = append(out, sp)
	}
	return out
}

// snapCoord rounds v to the precision grid. When 1/precision is an
// integer the division is exact, so 40 stays 40 at precision 1e-6.
func snapCoord(v, precision float64) float64 {
	inv := 1 / precision
	if scale := math.Round(inv); scale >= 1 && math.Abs(inv-scale) <= 1e-9*scale {
		return math.Round(v*scale) / scale
	}
	return math.Round(v/precision) * precision
}

func snapRing(ring []Point, precision float64) []Point {
	out := make([]Point, 0, len(ring))
	for _, p := range ring {
		q := Point{
			X: snapCoord(p.X, precision),
			Y: snapCoord(p.Y, precision),
		}
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	if len(out) < 3 || RingArea(out) == 0 {
		return nil
	}
	return out
}
