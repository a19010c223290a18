package geom

import "math"

// CapStyle selects how the ends of a widened path are finished.
type CapStyle int

const (
	CapFlat   CapStyle = iota // ends stop at the end points
	CapRound                  // half discs past the end points
	CapSquare                 // ends extended by half the width
)

// JoinStyle selects how offset edges meet at convex corners.
type JoinStyle int

const (
	JoinMitre JoinStyle = iota // sharp corner, bevelled past MitreLimit
	JoinRound
	JoinBevel
)

// MitreLimit is the largest mitre length, as a multiple of the offset
// distance, drawn before a corner falls back to a bevel.
const MitreLimit = 5.0

// Style carries the corner treatment of a buffer operation. Tolerance is
// the largest distance between a round arc and its polygon; zero uses a
// hundredth of the offset distance.
type Style struct {
	Cap       CapStyle
	Join      JoinStyle
	Tolerance float64
}

// Line is an open polyline with a width, such as a trace centre line.
type Line struct {
	Points []Point
	Width  float64
}

// Buffer grows every polygon of ps outward by d and unions the result.
// Convex corners are finished with style.Join; with JoinMitre the result
// is exact for rectilinear input. A non-positive d returns the union of
// ps.
func Buffer(ps []Polygon, d float64, style Style, precision float64) ([]Polygon, error) {
	if d <= 0 || len(ps) == 0 {
		return Union(ps, precision)
	}
	pieces := make([]Polygon, 0, len(ps))
	for _, p := range ps {
		p = Orient(p)
		pieces = append(pieces, p)
		pieces = appendRingOffset(pieces, p.Exterior, d, style)
		for _, h := range p.Holes {
			pieces = appendRingOffset(pieces, h, d, style)
		}
	}
	return Union(pieces, precision)
}

// Widen turns each line into the polygon covering every point within
// Width/2 of it, with style.Cap at the ends and style.Join at the bends.
// Lines with fewer than two distinct points or no width are skipped.
func Widen(lines []Line, style Style, precision float64) ([]Polygon, error) {
	var pieces []Polygon
	for _, l := range lines {
		h := l.Width / 2
		pts := dedupe(l.Points, false)
		if h <= 0 || len(pts) < 2 {
			continue
		}
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]
			n := unitNormal(a, b).scale(h)
			pieces = append(pieces, Polygon{Exterior: []Point{
				a.sub(n), b.sub(n), b.add(n), a.add(n),
			}})
		}
		for i := 1; i+1 < len(pts); i++ {
			u1 := unitNormal(pts[i-1], pts[i])
			u2 := unitNormal(pts[i], pts[i+1])
			turn := cross(pts[i].sub(pts[i-1]), pts[i+1].sub(pts[i]))
			if turn > 0 {
				// Left turn: the outside of the bend is on the right.
				pieces = appendJoin(pieces, pts[i], u1, u2, h, style)
			} else if turn < 0 {
				pieces = appendJoin(pieces, pts[i], u1.scale(-1), u2.scale(-1), h, style)
			}
		}
		pieces = appendCap(pieces, pts[0], pts[1], h, style)
		pieces = appendCap(pieces, pts[len(pts)-1], pts[len(pts)-2], h, style)
	}
	if len(pieces) == 0 {
		return nil, nil
	}
	return Union(pieces, precision)
}

// appendRingOffset adds the outward strip of every edge of an oriented
// ring, and a join at every convex vertex. Material lies to the left of
// each edge, so outward is the right-hand normal.
func appendRingOffset(pieces []Polygon, ring []Point, d float64, style Style) []Polygon {
	ring = dedupe(ring, true)
	n := len(ring)
	if n < 3 {
		return pieces
	}
	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		off := unitNormal(a, b).scale(d)
		pieces = append(pieces, Polygon{Exterior: []Point{a, b, b.add(off), a.add(off)}})
	}
	for i := range n {
		prev, v, next := ring[(i+n-1)%n], ring[i], ring[(i+1)%n]
		if cross(v.sub(prev), next.sub(v)) > 0 {
			pieces = appendJoin(pieces, v, unitNormal(prev, v), unitNormal(v, next), d, style)
		}
	}
	return pieces
}

// appendJoin fills the wedge at v between the offset directions n1 and
// n2 (unit vectors) at distance d.
func appendJoin(pieces []Polygon, v, n1, n2 Point, d float64, style Style) []Polygon {
	p1, p2 := v.add(n1.scale(d)), v.add(n2.scale(d))
	switch style.Join {
	case JoinRound:
		return append(pieces, disc(v, d, style.Tolerance))
	case JoinMitre:
		if c := 1 + dot(n1, n2); c > 0 {
			m := v.add(n1.add(n2).scale(d / c))
			if m.sub(v).length() <= MitreLimit*d {
				return append(pieces, Polygon{Exterior: []Point{v, p1, m, p2}})
			}
		}
	}
	return append(pieces, Polygon{Exterior: []Point{v, p1, p2}})
}

// appendCap finishes the end at tip of a path whose previous point is
// from.
func appendCap(pieces []Polygon, tip, from Point, h float64, style Style) []Polygon {
	switch style.Cap {
	case CapRound:
		return append(pieces, disc(tip, h, style.Tolerance))
	case CapSquare:
		u := tip.sub(from).scale(1 / tip.sub(from).length())
		n := Point{-u.Y, u.X}.scale(h)
		ext := tip.add(u.scale(h))
		return append(pieces, Polygon{Exterior: []Point{
			tip.sub(n), ext.sub(n), ext.add(n), tip.add(n),
		}})
	}
	return pieces
}

// disc returns a polygon circumscribing the circle of radius r at c, so
// the disc is always covered. Edges deviate from the circle by at most
// tol.
func disc(c Point, r, tol float64) Polygon {
	if tol <= 0 || tol >= r {
		tol = r / 100
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tol/r)))
	n = min(max(n, 8), 256)
	cr := r / math.Cos(math.Pi/float64(n))
	ring := make([]Point, n)
	for i := range ring {
		a := 2 * math.Pi * (float64(i) + 0.5) / float64(n)
		ring[i] = Point{c.X + cr*math.Cos(a), c.Y + cr*math.Sin(a)}
	}
	return Polygon{Exterior: ring}
}

// unitNormal returns the right-hand unit normal of the segment a->b.
func unitNormal(a, b Point) Point {
	d := b.sub(a)
	l := d.length()
	return Point{d.Y / l, -d.X / l}
}

// dedupe drops repeated consecutive points, and a closing point repeating
// the first when closed is set.
func dedupe(pts []Point, closed bool) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for closed && len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) length() float64 { return math.Hypot(p.X, p.Y) }
func dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }
func cross(p, q Point) float64 { return p.X*q.Y - p.Y*q.X }
