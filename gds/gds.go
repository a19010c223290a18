// Package gds writes cheesed layer sets as GDSII stream files.
//
// A [Library] holds flat cells of boundaries and structure references.
// [FromLayers] lays a [cheese.Layers] set out in the cell hierarchy the
// export pipeline has always used:
//
//	TOP
//	└── TOP_<chip>
//	    └── TOP_<chip>_<layer>
//	        ├── ground_<chip>_<layer>
//	        ├── TOP_<chip>_<layer>_NoCheese_<datatype>
//	        ├── TOP_<chip>_<layer>_one_hole
//	        ├── TOP_<chip>_<layer>_Cheese_diff
//	        └── TOP_<chip>_<layer>_Cheese_<datatype>
//
// Coordinates stay in metres until they are written, when they are
// rounded to the library's database unit.
package gds

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/cheese"
)

// MaxBoundaryPoints is the largest number of distinct vertices one
// BOUNDARY can carry; the XY record also repeats the first vertex.
const MaxBoundaryPoints = 8190

// Errors returned while building or writing a library.
var (
	// ErrCoordinateRange is returned when a vertex does not fit a signed
	// 32-bit database coordinate.
	ErrCoordinateRange = errors.New("gds: coordinate out of range")

	// ErrTooManyPoints is returned for a boundary over MaxBoundaryPoints.
	ErrTooManyPoints = errors.New("gds: boundary has too many points")

	// ErrUnknownCell is returned for a reference to a cell the library
	// does not define.
	ErrUnknownCell = errors.New("gds: unknown cell")
)

// Library is a GDSII library.
type Library struct {
	Name string

	// Unit is the user unit in metres; Precision is the database unit in
	// metres. Every coordinate is written as a multiple of Precision.
	Unit      float64
	Precision float64

	// Timestamp is written as both modification and access time.
	Timestamp time.Time

	Cells []*Cell
}

// NewLibrary returns an empty library with a 1µm user unit and a 1nm
// database unit.
func NewLibrary(name string) *Library {
	return &Library{
		Name:      name,
		Unit:      1e-6,
		Precision: 1e-9,
		Timestamp: time.Now(),
	}
}

// Cell is a named structure.
type Cell struct {
	Name       string
	Boundaries []Boundary
	Refs       []SRef
}

// Boundary is a filled polygon on one layer and datatype. Points form an
// open ring; the writer closes it.
type Boundary struct {
	Layer    int
	Datatype int
	Points   []cheese.Point
}

// SRef places the cell named Name at Origin.
type SRef struct {
	Name   string
	Origin cheese.Point
}

// Cell returns the cell called name.
func (lib *Library) Cell(name string) (*Cell, bool) {
	for _, c := range lib.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddCell appends an empty cell and returns it.
func (lib *Library) AddCell(name string) *Cell {
	c := &Cell{Name: name}
	lib.Cells = append(lib.Cells, c)
	return c
}

// AddPolygons appends one boundary per polygon. Polygons must be free of
// holes; use [cheese.PolygonSet.Fracture] first.
func (c *Cell) AddPolygons(layer, datatype int, polys cheese.PolygonSet) error {
	for i, p := range polys {
		if len(p.Holes) > 0 {
			return fmt.Errorf("gds: cell %s polygon %d has %d holes", c.Name, i, len(p.Holes))
		}
		if len(p.Exterior) > MaxBoundaryPoints {
			return fmt.Errorf("%w: cell %s polygon %d has %d", ErrTooManyPoints, c.Name, i, len(p.Exterior))
		}
		c.Boundaries = append(c.Boundaries, Boundary{Layer: layer, Datatype: datatype, Points: p.Exterior})
	}
	return nil
}

// AddRef places the cell named name at the origin of c.
func (c *Cell) AddRef(name string) {
	c.Refs = append(c.Refs, SRef{Name: name})
}

// TopCell is the name of the root cell built by FromLayers.
const TopCell = "TOP"

// CellName returns the export name of the group cell for key.
func CellName(key cheese.LayerKey, datatype int) string {
	base := fmt.Sprintf("TOP_%s_%d", key.Chip, key.Layer)
	switch key.Role {
	case cheese.RoleGround:
		return fmt.Sprintf("ground_%s_%d", key.Chip, key.Layer)
	case cheese.RoleKeepout:
		return fmt.Sprintf("%s_NoCheese_%d", base, datatype)
	case cheese.RoleOneHole:
		return base + "_one_hole"
	case cheese.RoleCheeseDiff:
		return base + "_Cheese_diff"
	case cheese.RoleCheese:
		return fmt.Sprintf("%s_Cheese_%d", base, datatype)
	default:
		return fmt.Sprintf("%s_%s", base, key.Role)
	}
}

// FromLayers lays layers out in the export hierarchy. Polygons are
// fractured to hole-free pieces of at most maxPoints vertices (capped at
// MaxBoundaryPoints) on the library's database grid.
func FromLayers(lib *Library, layers *cheese.Layers, maxPoints int) error {
	if maxPoints <= 0 || maxPoints > MaxBoundaryPoints {
		maxPoints = MaxBoundaryPoints
	}

	top := lib.AddCell(TopCell)
	chipCells := make(map[string]*Cell)
	layerCells := make(map[string]*Cell)
	var boundaries int

	for _, g := range layers.Groups() {
		k := g.Key
		chipName := "TOP_" + k.Chip
		chip, ok := chipCells[chipName]
		if !ok {
			chip = lib.AddCell(chipName)
			chipCells[chipName] = chip
			top.AddRef(chipName)
		}
		layerName := fmt.Sprintf("TOP_%s_%d", k.Chip, k.Layer)
		layer, ok := layerCells[layerName]
		if !ok {
			layer = lib.AddCell(layerName)
			layerCells[layerName] = layer
			chip.AddRef(layerName)
		}

		polys, err := g.Polygons.Fracture(maxPoints, lib.Precision)
		if err != nil {
			return fmt.Errorf("gds: %s: %w", k, err)
		}
		name := CellName(k, g.Datatype)
		cell := lib.AddCell(name)
		if err := cell.AddPolygons(k.Layer, g.Datatype, polys); err != nil {
			return err
		}
		layer.AddRef(name)
		boundaries += len(cell.Boundaries)
	}

	cheese.Logger().Debug("gds hierarchy built",
		"cells", len(lib.Cells), "boundaries", boundaries, "max_points", maxPoints)
	return nil
}
