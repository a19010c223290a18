package geom

import (
	"errors"
	"fmt"
	"sort"
)

// ErrFracture is returned when a polygon cannot be split into hole-free
// pieces within the vertex limit.
var ErrFracture = errors.New("geom: fracture failed")

// maxFractureDepth bounds the recursive bisection in Fracture. Every cut
// halves the holes or the box, so real layouts finish far below it.
const maxFractureDepth = 64

// Fracture splits p into hole-free polygons of at most maxPoints vertices
// each, by recursively bisecting its bounding box. Polygons with holes are
// cut across the longer box side through the median hole centre, so each
// cut opens at least one hole and leaves about half of the rest on either
// side. maxPoints below 4 disables the vertex limit; holes are always
// removed.
func Fracture(p Polygon, maxPoints int, precision float64) ([]Polygon, error) {
	return fracture(p, maxPoints, precision, 0)
}

func fracture(p Polygon, maxPoints int, precision float64, depth int) ([]Polygon, error) {
	tooBig := maxPoints >= 4 && len(p.Exterior) > maxPoints
	if len(p.Holes) == 0 && !tooBig {
		return []Polygon{p}, nil
	}
	if depth >= maxFractureDepth {
		return nil, fmt.Errorf("%w: depth %d reached with %d holes and %d vertices",
			ErrFracture, depth, len(p.Holes), len(p.Exterior))
	}

	bb := RingBounds(p.Exterior)
	alongX := bb.Max.X-bb.Min.X >= bb.Max.Y-bb.Min.Y
	var cut float64
	if len(p.Holes) > 0 {
		cut = medianHoleCentre(p.Holes, alongX)
	} else if alongX {
		cut = (bb.Min.X + bb.Max.X) / 2
	} else {
		cut = (bb.Min.Y + bb.Max.Y) / 2
	}
	cut = snapCut(cut, precision)

	var lo, hi Box
	if alongX {
		lo, hi = splitX(bb, cut)
	} else {
		lo, hi = splitY(bb, cut)
	}
	if !lo.positive() || !hi.positive() {
		return nil, fmt.Errorf("%w: cut at %g leaves an empty side", ErrFracture, cut)
	}

	var out []Polygon
	for _, half := range []Box{lo, hi} {
		parts, err := Intersection([]Polygon{p}, []Polygon{half.Polygon()}, precision)
		if err != nil {
			return nil, err
		}
		for _, part := range parts {
			pieces, err := fracture(part, maxPoints, precision, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
	}
	return out, nil
}

// medianHoleCentre returns the median of the hole box centres along X
// (alongX) or Y.
func medianHoleCentre(holes [][]Point, alongX bool) float64 {
	cs := make([]float64, len(holes))
	for i, h := range holes {
		hb := RingBounds(h)
		if alongX {
			cs[i] = (hb.Min.X + hb.Max.X) / 2
		} else {
			cs[i] = (hb.Min.Y + hb.Max.Y) / 2
		}
	}
	sort.Float64s(cs)
	return cs[len(cs)/2]
}

func snapCut(v, precision float64) float64 {
	if precision <= 0 {
		return v
	}
	return snapCoord(v, precision)
}

func splitX(b Box, x float64) (Box, Box) {
	return Box{Min: b.Min, Max: Point{x, b.Max.Y}},
		Box{Min: Point{x, b.Min.Y}, Max: b.Max}
}

func splitY(b Box, y float64) (Box, Box) {
	return Box{Min: b.Min, Max: Point{b.Max.X, y}},
		Box{Min: Point{b.Min.X, y}, Max: b.Max}
}

// Polygon returns the box as a counter-clockwise rectangle.
func (b Box) Polygon() Polygon {
	return Polygon{Exterior: []Point{
		b.Min,
		{b.Max.X, b.Min.Y},
		b.Max,
		{b.Min.X, b.Max.Y},
	}}
}

func (b Box) positive() bool {
	return b.Max.X > b.Min.X && b.Max.Y > b.Min.Y
}
