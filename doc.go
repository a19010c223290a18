// Package cheese perforates ground planes with a lattice of holes for
// GDS export.
//
// # Overview
//
// Large continuous metal planes on superconducting chips trap flux and
// stress the film. Cheesing punches a regular pattern of small holes into
// the ground plane everywhere except near circuit elements (the keep-out,
// or no-cheese, region) and along the chip edge.
//
// # Quick Start
//
//	cfg := cheese.DefaultConfig()
//	cfg.Bounds = cheese.R(0, 0, 10e-3, 10e-3)
//	cfg.Keepout = keepout
//
//	layers := cheese.NewLayers()
//	layers.Put(cheese.LayerKey{Chip: "main", Layer: 1, Role: cheese.RoleGround},
//		0, cheese.PolygonSet{cfg.Bounds.Polygon()})
//
//	c, err := cheese.NewCheeser(cfg)
//	if err != nil {
//		return err
//	}
//	res, err := c.Apply(layers)
//
// # Pipeline
//
// Apply runs, in order:
//   - Validate: the lattice spacing must exceed the hole extent
//   - Template: the hole outline at the origin, flattened to a polygon
//   - GenerateGrid and PlaceHoles: the lattice over the chip minus its edge margin
//   - SubtractKeepout: lattice minus keep-out (or DropKeepoutHoles)
//   - Compose: positive or negative mask, fabrication or debug layers
//
// # Masks
//
// A positive mask writes the ground plane with the holes removed. A
// negative mask writes the holes themselves. With Config.Fab set only the
// final layer survives; otherwise the hole template, the keep-out, the
// raw ground and the hole lattice stay in the output for inspection.
//
// # Coordinate System
//
// Layout coordinates: X increases right, Y increases up. Lengths are in
// metres by convention; any unit works as long as all lengths agree.
//
// Output is a Layers set keyed by chip, layer and role. Package gds turns
// it into a GDSII stream and package preview into a PNG.
package cheese

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
