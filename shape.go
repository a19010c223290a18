package cheese

import "fmt"

// ShapeKind is the numeric hole shape selector of the renderer options:
// 0 is a rectangle, 1 is a circle.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// HoleShape is a single hole centred on the origin. The set of shapes is
// closed: Rectangle and Circle are the only implementations.
type HoleShape interface {
	// BoundingExtent returns the full width and height of the hole.
	BoundingExtent() (dx, dy float64)

	// Path returns the hole outline centred on the origin.
	Path() *Path

	isHoleShape()
}

// Rectangle is an axis-aligned rectangular hole.
type Rectangle struct {
	Width, Height float64
}

func (Rectangle) isHoleShape() {}

func (r Rectangle) BoundingExtent() (float64, float64) { return r.Width, r.Height }

func (r Rectangle) Path() *Path {
	p := NewPath()
	p.Rectangle(-r.Width/2, -r.Height/2, r.Width, r.Height)
	return p
}

func (r Rectangle) String() string { return fmt.Sprintf("rectangle %gx%g", r.Width, r.Height) }

// Circle is a circular hole, flattened to a polygon when templated.
type Circle struct {
	Radius float64
}

func (Circle) isHoleShape() {}

func (c Circle) BoundingExtent() (float64, float64) {
	d := 2 * c.Radius
	return d, d
}

func (c Circle) Path() *Path {
	p := NewPath()
	p.Circle(0, 0, c.Radius)
	return p
}

func (c Circle) String() string { return fmt.Sprintf("circle r=%g", c.Radius) }

// ShapeFor selects the hole shape for kind. It returns nil for an unknown
// kind; Validate reports that as OutcomeUnsupportedShape.
func ShapeFor(kind ShapeKind, width, height, radius float64) HoleShape {
	switch kind {
	case ShapeRectangle:
		return Rectangle{Width: width, Height: height}
	case ShapeCircle:
		return Circle{Radius: radius}
	default:
		return nil
	}
}

// Template flattens shape into the single origin-centred hole polygon.
// tolerance bounds the chord error of curved outlines; zero picks a
// default relative to the hole size.
func Template(shape HoleShape, tolerance float64) (Polygon, error) {
	if shape == nil {
		return Polygon{}, ErrUnsupportedShape
	}
	rings := shape.Path().Rings(tolerance)
	if len(rings) != 1 {
		return Polygon{}, fmt.Errorf("%w: %v has no outline", ErrUnsupportedShape, shape)
	}
	return Polygon{Exterior: rings[0]}, nil
}
