package cheese

import (
	"fmt"

	"github.com/gogpu/cheese/internal/geom"
)

// Polygon is an exterior ring with optional interior rings. Rings are
// open: the closing vertex is implied.
type Polygon struct {
	Exterior []Point
	Holes    [][]Point
}

// PolygonSet is an unordered collection of polygons that may overlap.
type PolygonSet []Polygon

// Area returns the unsigned area of the polygon, holes excluded.
func (p Polygon) Area() float64 {
	return geom.Area(p.toGeom())
}

// Bounds returns the bounding rectangle of the exterior ring.
func (p Polygon) Bounds() Rect {
	b := geom.RingBounds(p.toGeom().Exterior)
	return R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Transform applies m to every vertex. Ring orientation is restored when
// m mirrors the plane.
func (p Polygon) Transform(m Matrix) Polygon {
	out := Polygon{Exterior: transformRing(p.Exterior, m)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, transformRing(h, m))
	}
	if !m.IsTranslation() && m.A*m.E-m.B*m.D < 0 {
		out = fromGeomPolygon(geom.Orient(out.toGeom()))
	}
	return out
}

func transformRing(ring []Point, m Matrix) []Point {
	out := make([]Point, len(ring))
	for i, pt := range ring {
		out[i] = m.TransformPoint(pt)
	}
	return out
}

// Area returns the summed area of the set. Overlaps are counted twice.
func (s PolygonSet) Area() float64 {
	return geom.TotalArea(s.toGeom())
}

// Bounds returns the bounding rectangle of the set; ok is false for an
// empty set.
func (s PolygonSet) Bounds() (r Rect, ok bool) {
	b, ok := geom.Bounds(s.toGeom())
	if !ok {
		return Rect{}, false
	}
	return R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y), true
}

// Clone returns a deep copy of the set.
func (s PolygonSet) Clone() PolygonSet {
	if s == nil {
		return nil
	}
	out := make(PolygonSet, len(s))
	for i, p := range s {
		out[i] = Polygon{Exterior: append([]Point(nil), p.Exterior...)}
		for _, h := range p.Holes {
			out[i].Holes = append(out[i].Holes, append([]Point(nil), h...))
		}
	}
	return out
}

// NumPoints returns the total number of vertices in the set.
func (s PolygonSet) NumPoints() int {
	n := 0
	for _, p := range s {
		n += len(p.Exterior)
		for _, h := range p.Holes {
			n += len(h)
		}
	}
	return n
}

// Normalized returns the set with counter-clockwise exteriors and
// clockwise holes, the orientation fill rules expect.
func (s PolygonSet) Normalized() PolygonSet {
	out := make(PolygonSet, len(s))
	for i, p := range s {
		out[i] = fromGeomPolygon(geom.Orient(p.toGeom()))
	}
	return out
}

func (p Polygon) toGeom() geom.Polygon {
	out := geom.Polygon{Exterior: toGeomRing(p.Exterior)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, toGeomRing(h))
	}
	return out
}

func toGeomRing(ring []Point) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, pt := range ring {
		out[i] = geom.Point(pt)
	}
	return out
}

func (s PolygonSet) toGeom() []geom.Polygon {
	out := make([]geom.Polygon, len(s))
	for i, p := range s {
		out[i] = p.toGeom()
	}
	return out
}

func fromGeomPolygon(p geom.Polygon) Polygon {
	out := Polygon{Exterior: fromGeomRing(p.Exterior)}
	for _, h := range p.Holes {
		out.Holes = append(out.Holes, fromGeomRing(h))
	}
	return out
}

func fromGeomRing(ring []geom.Point) []Point {
	out := make([]Point, len(ring))
	for i, pt := range ring {
		out[i] = Point(pt)
	}
	return out
}

func fromGeom(ps []geom.Polygon) PolygonSet {
	if len(ps) == 0 {
		return nil
	}
	out := make(PolygonSet, len(ps))
	for i, p := range ps {
		out[i] = fromGeomPolygon(p)
	}
	return out
}

// Fracture splits every polygon into hole-free pieces of at most
// maxPoints vertices, cutting on the precision grid. A maxPoints below 4
// only removes holes. Engine failures wrap ErrGeometry.
func (s PolygonSet) Fracture(maxPoints int, precision float64) (PolygonSet, error) {
	var out PolygonSet
	for i, p := range s {
		if len(p.Holes) == 0 && (maxPoints < 4 || len(p.Exterior) <= maxPoints) {
			out = append(out, p)
			continue
		}
		parts, err := geom.Fracture(p.toGeom(), maxPoints, precision)
		if err != nil {
			return nil, fmt.Errorf("%w: fracture polygon %d: %w", ErrGeometry, i, err)
		}
		out = append(out, fromGeom(parts)...)
	}
	return out, nil
}
