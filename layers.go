package cheese

import "fmt"

// Role identifies what a polygon group holds within one chip layer.
type Role int

const (
	// RoleGround is the un-cheesed ground plane supplied by the caller.
	RoleGround Role = iota
	// RoleKeepout is the no-cheese region, kept for inspection.
	RoleKeepout
	// RoleOneHole is the single hole template at the origin.
	RoleOneHole
	// RoleCheeseDiff holds the lattice after keep-out subtraction.
	RoleCheeseDiff
	// RoleCheese is the fabrication-ready result.
	RoleCheese
)

func (r Role) String() string {
	switch r {
	case RoleGround:
		return "ground"
	case RoleKeepout:
		return "keepout"
	case RoleOneHole:
		return "one_hole"
	case RoleCheeseDiff:
		return "cheese_diff"
	case RoleCheese:
		return "cheese"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// LayerKey addresses a polygon group.
type LayerKey struct {
	Chip  string
	Layer int
	Role  Role
}

func (k LayerKey) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Chip, k.Layer, k.Role)
}

// Group is the polygons of one role on one chip layer, written on a
// single GDS datatype.
type Group struct {
	Key      LayerKey
	Datatype int
	Polygons PolygonSet
}

// Layers is the output layer set of one or more cheesing runs. Groups
// keep the order in which they were first added.
//
// Layers is not safe for concurrent use; see RunBatch for running
// independent layers in parallel.
type Layers struct {
	groups map[LayerKey]*Group
	order  []LayerKey
}

// NewLayers creates an empty layer set.
func NewLayers() *Layers {
	return &Layers{groups: make(map[LayerKey]*Group)}
}

// Put stores polys under key, replacing any previous group in place.
func (l *Layers) Put(key LayerKey, datatype int, polys PolygonSet) *Group {
	if g, ok := l.groups[key]; ok {
		g.Datatype = datatype
		g.Polygons = polys
		return g
	}
	g := &Group{Key: key, Datatype: datatype, Polygons: polys}
	l.groups[key] = g
	l.order = append(l.order, key)
	return g
}

// Get returns the group stored under key.
func (l *Layers) Get(key LayerKey) (*Group, bool) {
	g, ok := l.groups[key]
	return g, ok
}

// Delete removes the group under key and reports whether it existed.
func (l *Layers) Delete(key LayerKey) bool {
	if _, ok := l.groups[key]; !ok {
		return false
	}
	delete(l.groups, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of groups.
func (l *Layers) Len() int { return len(l.order) }

// Groups returns the groups in insertion order.
func (l *Layers) Groups() []*Group {
	out := make([]*Group, len(l.order))
	for i, k := range l.order {
		out[i] = l.groups[k]
	}
	return out
}

// Chips returns the distinct chip names in insertion order.
func (l *Layers) Chips() []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range l.order {
		if !seen[k.Chip] {
			seen[k.Chip] = true
			out = append(out, k.Chip)
		}
	}
	return out
}

// Subset returns a copy of the groups that belong to chip and layer.
// Polygon slices are shared with l.
func (l *Layers) Subset(chip string, layer int) *Layers {
	out := NewLayers()
	for _, k := range l.order {
		if k.Chip == chip && k.Layer == layer {
			g := l.groups[k]
			out.Put(k, g.Datatype, g.Polygons)
		}
	}
	return out
}

// Replace drops every group of chip and layer and adds the groups of src.
func (l *Layers) Replace(chip string, layer int, src *Layers) {
	kept := l.order[:0]
	for _, k := range l.order {
		if k.Chip == chip && k.Layer == layer {
			delete(l.groups, k)
			continue
		}
		kept = append(kept, k)
	}
	l.order = kept
	for _, g := range src.Groups() {
		l.Put(g.Key, g.Datatype, g.Polygons)
	}
}
