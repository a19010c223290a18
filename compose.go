package cheese

import "fmt"

// MaskPolicy selects how cheesed holes become output layers.
type MaskPolicy struct {
	Chip  string
	Layer int

	// IsNegMask writes the holes themselves; otherwise the holes are
	// punched out of the ground plane.
	IsNegMask bool

	// Fab keeps only the fabrication-ready layer; otherwise the
	// template and intermediate layers stay for inspection.
	Fab bool

	// DatatypeCheese is the datatype of the final layer. The diff layer
	// uses DatatypeCheese+1 and the hole template DatatypeCheese+2.
	DatatypeCheese int

	Precision float64
}

func (p MaskPolicy) key(role Role) LayerKey {
	return LayerKey{Chip: p.Chip, Layer: p.Layer, Role: role}
}

// Compose writes holes into layers according to p and removes the
// groups fabrication output must not carry. A positive mask needs a
// RoleGround group; without one ErrMissingGround is returned and layers
// is left untouched. Engine failures wrap ErrGeometry.
func Compose(layers *Layers, p MaskPolicy, holes PolygonSet) error {
	if p.IsNegMask {
		if len(holes) > 0 {
			layers.Put(p.key(RoleCheese), p.DatatypeCheese, holes)
		}
		if p.Fab {
			layers.Delete(p.key(RoleOneHole))
		}
		return nil
	}

	ground, ok := layers.Get(p.key(RoleGround))
	if !ok {
		return fmt.Errorf("%w: chip %q layer %d", ErrMissingGround, p.Chip, p.Layer)
	}

	cheesed, err := difference(ground.Polygons, holes, p.Precision, "subtract holes from ground")
	if err != nil {
		return err
	}

	if p.Fab {
		layers.Delete(p.key(RoleOneHole))
		layers.Delete(p.key(RoleCheeseDiff))
		layers.Delete(p.key(RoleGround))
	} else if len(holes) > 0 {
		layers.Put(p.key(RoleCheeseDiff), p.DatatypeCheese+1, holes)
	}
	layers.Put(p.key(RoleCheese), p.DatatypeCheese, cheesed)
	return nil
}
