package cheese

import (
	"errors"
	"fmt"
	"math"
)

// maxGDSNumber is the largest layer or datatype a GDSII stream can carry.
const maxGDSNumber = 32767

// Config describes one cheesing run for a single chip layer. Lengths are
// in the same physical unit as Bounds (metres by convention).
type Config struct {
	// Chip names the chip; it only appears in output keys.
	Chip string

	// Bounds is the chip footprint.
	Bounds Rect

	// Keepout is the no-cheese region for this layer.
	Keepout PolygonSet

	// EdgeNoCheese is the margin along the chip edge left without holes.
	EdgeNoCheese float64

	Layer           int
	IsNegMask       bool
	DatatypeCheese  int
	DatatypeKeepout int

	// Fab drops the template and intermediate layers from the output.
	Fab bool

	// MaxPoints caps polygon vertex counts when exporting; 0 disables
	// fracturing by size.
	MaxPoints int

	// Precision is the snapping grid of every Boolean operation.
	Precision float64

	// CheeseShape selects Shape0X×Shape0Y rectangles or Shape1Radius
	// circles.
	CheeseShape  ShapeKind
	Shape0X      float64
	Shape0Y      float64
	Shape1Radius float64

	// DeltaX and DeltaY are the distances between neighbouring hole centres.
	DeltaX float64
	DeltaY float64

	// Tolerance is the chord error allowed when flattening circles; 0
	// selects one thousandth of the radius.
	Tolerance float64
}

// DefaultConfig returns the renderer defaults: 50µm square holes on a
// 100µm pitch with a 200µm edge margin, written on layer 1 datatype 100.
func DefaultConfig() Config {
	return Config{
		Chip:            "main",
		EdgeNoCheese:    200e-6,
		Layer:           1,
		DatatypeCheese:  100,
		DatatypeKeepout: 99,
		MaxPoints:       199,
		Precision:       1e-9,
		CheeseShape:     ShapeRectangle,
		Shape0X:         50e-6,
		Shape0Y:         50e-6,
		Shape1Radius:    25e-6,
		DeltaX:          100e-6,
		DeltaY:          100e-6,
	}
}

// Shape returns the configured hole shape, or nil for an unknown kind.
func (c Config) Shape() HoleShape {
	return ShapeFor(c.CheeseShape, c.Shape0X, c.Shape0Y, c.Shape1Radius)
}

// GridRect returns the chip bounds shrunk by EdgeNoCheese.
func (c Config) GridRect() Rect {
	return c.Bounds.Inset(c.EdgeNoCheese)
}

// Policy returns the mask policy of the run.
func (c Config) Policy() MaskPolicy {
	return MaskPolicy{
		Chip:           c.Chip,
		Layer:          c.Layer,
		IsNegMask:      c.IsNegMask,
		Fab:            c.Fab,
		DatatypeCheese: c.DatatypeCheese,
		Precision:      c.Precision,
	}
}

// check reports structural problems that make the configuration
// unusable. The spacing-versus-hole ratio and the shape kind are left to
// Validate.
func (c Config) check() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Bounds.Empty() || !finite(c.Bounds.Min.X, c.Bounds.Min.Y, c.Bounds.Max.X, c.Bounds.Max.Y) {
		bad("bounds %v must be a non-empty finite rectangle", c.Bounds)
	}
	if !finite(c.EdgeNoCheese) || c.EdgeNoCheese < 0 {
		bad("edge_nocheese %v must be >= 0", c.EdgeNoCheese)
	}
	if !finite(c.DeltaX, c.DeltaY) || c.DeltaX <= 0 || c.DeltaY <= 0 {
		bad("delta_x %v and delta_y %v must be > 0", c.DeltaX, c.DeltaY)
	}
	if !finite(c.Precision) || c.Precision <= 0 {
		bad("precision %v must be > 0", c.Precision)
	}
	if !finite(c.Tolerance) || c.Tolerance < 0 {
		bad("tolerance %v must be >= 0", c.Tolerance)
	}
	if c.MaxPoints < 0 {
		bad("max_points %d must be >= 0", c.MaxPoints)
	}
	if c.Layer < 0 || c.Layer > maxGDSNumber {
		bad("layer %d out of range [0, %d]", c.Layer, maxGDSNumber)
	}
	if c.DatatypeCheese < 0 || c.DatatypeCheese+2 > maxGDSNumber {
		bad("datatype_cheese %d out of range [0, %d]", c.DatatypeCheese, maxGDSNumber-2)
	}
	if c.DatatypeKeepout < 0 || c.DatatypeKeepout > maxGDSNumber {
		bad("datatype_keepout %d out of range [0, %d]", c.DatatypeKeepout, maxGDSNumber)
	}
	switch c.CheeseShape {
	case ShapeRectangle:
		if !finite(c.Shape0X, c.Shape0Y) || c.Shape0X <= 0 || c.Shape0Y <= 0 {
			bad("shape_0_x %v and shape_0_y %v must be > 0", c.Shape0X, c.Shape0Y)
		}
	case ShapeCircle:
		if !finite(c.Shape1Radius) || c.Shape1Radius <= 0 {
			bad("shape_1_radius %v must be > 0", c.Shape1Radius)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: chip %q layer %d: %w", ErrInvalidConfig, c.Chip, c.Layer, err)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
