package cheese

import (
	"fmt"

	"github.com/gogpu/cheese/internal/geom"
)

// KeepoutMode selects how holes that meet the keep-out are treated.
type KeepoutMode int

const (
	// KeepoutClip subtracts the keep-out from each hole, leaving partial
	// holes along the keep-out boundary.
	KeepoutClip KeepoutMode = iota
	// KeepoutWholeHoles drops every hole that overlaps the keep-out, so
	// only complete holes remain.
	KeepoutWholeHoles
)

func (m KeepoutMode) String() string {
	switch m {
	case KeepoutClip:
		return "clip"
	case KeepoutWholeHoles:
		return "whole"
	default:
		return fmt.Sprintf("KeepoutMode(%d)", int(m))
	}
}

// SubtractKeepout returns lattice minus keepout, computed at precision.
// An empty keep-out returns the lattice unchanged; an empty lattice
// returns nil. Engine failures wrap ErrGeometry.
func SubtractKeepout(lattice, keepout PolygonSet, precision float64) (PolygonSet, error) {
	if len(lattice) == 0 {
		return nil, nil
	}
	return difference(lattice, keepout, precision, "subtract keep-out")
}

func difference(a, b PolygonSet, precision float64, what string) (PolygonSet, error) {
	if len(b) == 0 {
		return a, nil
	}
	out, err := geom.Difference(a.toGeom(), b.toGeom(), precision)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGeometry, what, err)
	}
	return fromGeom(out), nil
}

// DropKeepoutHoles returns the holes of lattice that do not overlap
// keepout. Holes that merely touch the keep-out boundary are kept.
func DropKeepoutHoles(lattice, keepout PolygonSet, precision float64) (PolygonSet, error) {
	if len(lattice) == 0 {
		return nil, nil
	}
	if len(keepout) == 0 {
		return lattice, nil
	}
	cutter, err := geom.NewCutter(keepout.toGeom(), precision)
	if err != nil {
		return nil, fmt.Errorf("%w: keep-out: %w", ErrGeometry, err)
	}

	var out PolygonSet
	for _, hole := range lattice {
		g := []geom.Polygon{hole.toGeom()}
		rest, err := cutter.Difference(g)
		if err != nil {
			return nil, fmt.Errorf("%w: subtract keep-out: %w", ErrGeometry, err)
		}
		full := geom.TotalArea(geom.Snap(g, precision))
		if full-geom.TotalArea(rest) > 1e-9*full {
			continue
		}
		out = append(out, hole)
	}
	return out, nil
}

// CapStyle selects how the ends of a keep-out trace are finished.
type CapStyle int

const (
	CapFlat   CapStyle = iota // ends stop at the end points
	CapRound                  // half discs past the end points
	CapSquare                 // ends extended by half the width
)

// JoinStyle selects how buffered keep-out edges meet at convex corners.
type JoinStyle int

const (
	JoinMitre JoinStyle = iota
	JoinRound
	JoinBevel
)

// Trace is an open keep-out path, such as a transmission line centre
// line, covering Width/2 on either side.
type Trace struct {
	Points []Point
	Width  float64
}

// KeepoutSource is the raw no-cheese geometry of one chip layer.
type KeepoutSource struct {
	Polygons PolygonSet
	Boxes    []Rect
	Traces   []Trace

	// Buffer is the margin grown around the merged geometry.
	Buffer float64

	// Cap finishes trace ends; Join finishes convex corners of traces
	// and of the buffered region. The zero values give flat ends and
	// mitred corners.
	Cap  CapStyle
	Join JoinStyle
}

func (src KeepoutSource) style() geom.Style {
	return geom.Style{Cap: geom.CapStyle(src.Cap), Join: geom.JoinStyle(src.Join)}
}

// PrepareKeepout builds the no-cheese region for one chip layer. Traces
// are widened by half their width, everything is merged, and the merged
// region is grown by src.Buffer. A warning is logged when the result
// reaches outside chip.
func PrepareKeepout(chip Rect, src KeepoutSource, precision float64) (PolygonSet, error) {
	all := make(PolygonSet, 0, len(src.Polygons)+len(src.Boxes))
	all = append(all, src.Polygons...)
	for _, b := range src.Boxes {
		if b.Empty() {
			continue
		}
		all = append(all, b.Polygon())
	}

	if len(src.Traces) > 0 {
		lines := make([]geom.Line, len(src.Traces))
		for i, tr := range src.Traces {
			lines[i] = geom.Line{Points: toGeomRing(tr.Points), Width: tr.Width}
		}
		widened, err := geom.Widen(lines, src.style(), precision)
		if err != nil {
			return nil, fmt.Errorf("%w: widen keep-out traces: %w", ErrGeometry, err)
		}
		all = append(all, fromGeom(widened)...)
	}
	if len(all) == 0 {
		return nil, nil
	}

	merged, err := geom.Buffer(all.toGeom(), src.Buffer, src.style(), precision)
	if err != nil {
		return nil, fmt.Errorf("%w: buffer keep-out: %w", ErrGeometry, err)
	}
	out := fromGeom(merged)

	if bb, ok := out.Bounds(); ok && !chip.Contains(bb) {
		Logger().Warn("no-cheese region extends outside chip",
			"chip", chip, "keepout", bb)
	}
	return out, nil
}
