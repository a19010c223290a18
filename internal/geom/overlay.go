package geom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sf "github.com/peterstace/simplefeatures/geom"
)

type overlayFunc func(a, b sf.Geometry) (sf.Geometry, error)

// Cutter is a prepared operand for repeated overlays: its polygons are
// unioned once and indexed by bounding box.
type Cutter struct {
	polys     []Polygon
	boxes     []Box
	precision float64
}

// NewCutter unions b at the given precision.
func NewCutter(b []Polygon, precision float64) (*Cutter, error) {
	polys, err := Union(b, precision)
	if err != nil {
		return nil, err
	}
	c := &Cutter{polys: polys, boxes: make([]Box, len(polys)), precision: precision}
	for i, p := range polys {
		c.boxes[i] = RingBounds(p.Exterior)
	}
	return c, nil
}

// Polygons returns the unioned cutter polygons.
func (c *Cutter) Polygons() []Polygon { return c.polys }

// Empty reports whether the cutter has no area.
func (c *Cutter) Empty() bool { return len(c.polys) == 0 }

// Difference subtracts the cutter from every polygon of a. Polygons whose
// bounding box misses the cutter are passed through unchanged, so the
// result keeps one entry per untouched input polygon.
func (c *Cutter) Difference(a []Polygon) ([]Polygon, error) {
	return c.overlay("difference", sf.Difference, a, true)
}

// Intersection clips every polygon of a to the cutter.
func (c *Cutter) Intersection(a []Polygon) ([]Polygon, error) {
	return c.overlay("intersection", sf.Intersection, a, false)
}

// Difference subtracts b from every polygon of a.
func Difference(a, b []Polygon, precision float64) ([]Polygon, error) {
	c, err := NewCutter(b, precision)
	if err != nil {
		return nil, err
	}
	return c.Difference(a)
}

// Intersection clips every polygon of a to b.
func Intersection(a, b []Polygon, precision float64) ([]Polygon, error) {
	c, err := NewCutter(b, precision)
	if err != nil {
		return nil, err
	}
	return c.Intersection(a)
}

func (c *Cutter) overlay(name string, op overlayFunc, a []Polygon, keepMisses bool) ([]Polygon, error) {
	a = Snap(a, c.precision)
	if len(a) == 0 {
		return nil, nil
	}
	if c.Empty() {
		if keepMisses {
			return a, nil
		}
		return nil, nil
	}

	var out []Polygon
	var hits []Polygon
	for i, p := range a {
		pb := RingBounds(p.Exterior)
		hits = hits[:0]
		for j, cb := range c.boxes {
			if pb.Overlaps(cb) {
				hits = append(hits, c.polys[j])
			}
		}
		if len(hits) == 0 {
			if keepMisses {
				out = append(out, p)
			}
			continue
		}

		pg, err := parse(polygonWKT(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %s operand %d: %v", ErrBoolean, name, i, err)
		}
		// Union output is pairwise disjoint, so any subset is a valid multipolygon.
		cg, err := parse(multiPolygonWKT(hits))
		if err != nil {
			return nil, fmt.Errorf("%w: %s cutter: %v", ErrBoolean, name, err)
		}
		res, err := op(pg, cg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBoolean, name, err)
		}
		out = append(out, decompose(res)...)
	}
	return out, nil
}

// Union merges ps into a set of polygons with pairwise disjoint
// interiors. Inputs whose bounding boxes neither overlap nor touch are
// returned as-is without involving the engine.
func Union(ps []Polygon, precision float64) ([]Polygon, error) {
	ps = Snap(ps, precision)
	if len(ps) <= 1 || boxesDisjoint(ps) {
		return ps, nil
	}

	gs := make([]sf.Geometry, len(ps))
	for i, p := range ps {
		g, err := parse(polygonWKT(p))
		if err != nil {
			return nil, fmt.Errorf("%w: union operand %d: %v", ErrBoolean, i, err)
		}
		gs[i] = g
	}

	// Cascaded pairwise union keeps intermediate results small.
	for len(gs) > 1 {
		next := make([]sf.Geometry, 0, (len(gs)+1)/2)
		for i := 0; i < len(gs); i += 2 {
			if i+1 == len(gs) {
				next = append(next, gs[i])
				continue
			}
			u, err := sf.Union(gs[i], gs[i+1])
			if err != nil {
				return nil, fmt.Errorf("%w: union: %v", ErrBoolean, err)
			}
			next = append(next, u)
		}
		gs = next
	}
	return decompose(gs[0]), nil
}

// boxesDisjoint reports whether no two polygons have overlapping or
// touching bounding boxes.
func boxesDisjoint(ps []Polygon) bool {
	boxes := make([]Box, len(ps))
	for i, p := range ps {
		boxes[i] = RingBounds(p.Exterior)
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].Min.X < boxes[j].Min.X })
	for i := range boxes {
		for j := i + 1; j < len(boxes) && boxes[j].Min.X <= boxes[i].Max.X; j++ {
			if boxes[i].Overlaps(boxes[j]) {
				return false
			}
		}
	}
	return true
}

func parse(wkt string) (sf.Geometry, error) {
	return sf.UnmarshalWKT(wkt)
}

// decompose flattens an overlay result into polygons, dropping empty
// members and any lower-dimensional fragments.
func decompose(g sf.Geometry) []Polygon {
	var out []Polygon
	switch g.Type() {
	case sf.TypePolygon:
		pg, ok := g.AsPolygon()
		if !ok {
			break
		}
		if p, ok := fromPolygon(pg); ok {
			out = append(out, p)
		}
	case sf.TypeMultiPolygon:
		mp, ok := g.AsMultiPolygon()
		if !ok {
			break
		}
		for i := 0; i < mp.NumPolygons(); i++ {
			if p, ok := fromPolygon(mp.PolygonN(i)); ok {
				out = append(out, p)
			}
		}
	case sf.TypeGeometryCollection:
		gc, ok := g.AsGeometryCollection()
		if !ok {
			break
		}
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, decompose(gc.GeometryN(i))...)
		}
	}
	return out
}

func fromPolygon(p sf.Polygon) (Polygon, bool) {
	if p.IsEmpty() {
		return Polygon{}, false
	}
	out := Polygon{Exterior: fromRing(p.ExteriorRing())}
	if len(out.Exterior) < 3 {
		return Polygon{}, false
	}
	for i := 0; i < p.NumInteriorRings(); i++ {
		if h := fromRing(p.InteriorRingN(i)); len(h) >= 3 {
			out.Holes = append(out.Holes, h)
		}
	}
	return out, true
}

func fromRing(ls sf.LineString) []Point {
	seq := ls.Coordinates()
	n := seq.Length()
	ring := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		ring = append(ring, Point{X: xy.X, Y: xy.Y})
	}
	if len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

func polygonWKT(p Polygon) string {
	var b strings.Builder
	b.WriteString("POLYGON")
	writePolygonBody(&b, p)
	return b.String()
}

func multiPolygonWKT(ps []Polygon) string {
	var b strings.Builder
	b.WriteString("MULTIPOLYGON(")
	for i, p := range ps {
		if i > 0 {
			b.WriteByte(',')
		}
		writePolygonBody(&b, p)
	}
	b.WriteByte(')')
	return b.String()
}

func writePolygonBody(b *strings.Builder, p Polygon) {
	b.WriteByte('(')
	writeRing(b, p.Exterior)
	for _, h := range p.Holes {
		b.WriteByte(',')
		writeRing(b, h)
	}
	b.WriteByte(')')
}

// writeRing writes a closed WKT ring. Coordinates use plain decimal
// notation; the shortest representation that round-trips is chosen.
func writeRing(b *strings.Builder, ring []Point) {
	b.WriteByte('(')
	for i := 0; i <= len(ring); i++ {
		p := ring[i%len(ring)]
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	b.WriteByte(')')
}
