package cheese

import "math"

// Rect is an axis-aligned rectangle [Min.X, Min.Y, Max.X, Max.Y].
type Rect struct {
	Min, Max Point
}

// R builds a Rect from its bounds.
func R(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: Pt(minX, minY), Max: Pt(maxX, maxY)}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle is degenerate or inverted on
// either axis.
func (r Rect) Empty() bool {
	return !(r.Max.X > r.Min.X) || !(r.Max.Y > r.Min.Y)
}

// Inset shrinks the rectangle by m on every side. A negative m grows it,
// which is the flat-cap, mitre-join buffer of a box.
func (r Rect) Inset(m float64) Rect {
	return R(r.Min.X+m, r.Min.Y+m, r.Max.X-m, r.Max.Y-m)
}

// Contains reports whether o lies within r, boundaries included.
func (r Rect) Contains(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y &&
		o.Max.X <= r.Max.X && o.Max.Y <= r.Max.Y
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return R(
		math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y),
		math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y),
	)
}

// Polygon returns the rectangle as a counter-clockwise polygon.
func (r Rect) Polygon() Polygon {
	return Polygon{Exterior: []Point{
		r.Min,
		Pt(r.Max.X, r.Min.Y),
		r.Max,
		Pt(r.Min.X, r.Max.Y),
	}}
}
