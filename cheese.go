package cheese

import (
	"errors"
	"fmt"
	"log/slog"
)

// Cheeser perforates the ground plane of one chip layer. It is built for
// a single Apply call and keeps no state between runs.
type Cheeser struct {
	cfg   Config
	opts  options
	shape HoleShape
}

// NewCheeser checks cfg and returns a cheeser for it. Structural errors
// (empty bounds, non-positive spacing or precision, out-of-range layer
// numbers) wrap ErrInvalidConfig. Hole/spacing problems are not errors
// here; Apply reports them as a skipped run.
func NewCheeser(cfg Config, opts ...Option) (*Cheeser, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cheeser{cfg: cfg, opts: o, shape: cfg.Shape()}, nil
}

// Config returns the configuration the cheeser was built with.
func (c *Cheeser) Config() Config { return c.cfg }

// Key returns the output key of role for the cheeser's chip layer.
func (c *Cheeser) Key(role Role) LayerKey {
	return LayerKey{Chip: c.cfg.Chip, Layer: c.cfg.Layer, Role: role}
}

// Result describes what Apply did.
type Result struct {
	// Applied is true when the output layers were modified.
	Applied bool

	// Outcome is the pre-flight validation result.
	Outcome Outcome

	// Skipped holds the reason the layer was left untouched, if it was.
	Skipped error

	// Placements is the number of lattice positions; Holes is the number
	// of hole polygons left after keep-out subtraction.
	Placements int
	Holes      int
}

// Apply cheeses the chip layer into layers: validate, build the hole
// template, lay out the lattice, subtract the keep-out and compose the
// mask. Non-fatal problems are logged, leave layers unmodified and are
// reported through Result.Skipped. Only geometry failures are returned
// as errors.
func (c *Cheeser) Apply(layers *Layers) (Result, error) {
	cfg := c.cfg
	log := Logger().With("chip", cfg.Chip, "layer", cfg.Layer)

	res := Result{Outcome: Validate(c.shape, cfg.DeltaX, cfg.DeltaY)}
	switch res.Outcome {
	case OutcomeOK:
	case OutcomeSpacingTooSmall:
		log.Warn("the size of delta spacing is same as or smaller than hole",
			"shape", c.shape, "delta_x", cfg.DeltaX, "delta_y", cfg.DeltaY)
		if !c.opts.allowOverlap {
			return c.skip(log, res, ErrSpacingTooSmall)
		}
	default:
		log.Warn("the cheese shape is unknown", "cheese_shape", cfg.CheeseShape)
		return c.skip(log, res, ErrUnsupportedShape)
	}

	grid := cfg.GridRect()
	if grid.Empty() {
		log.Warn("edge_nocheese leaves no area to cheese",
			"bounds", cfg.Bounds, "edge_nocheese", cfg.EdgeNoCheese)
		return c.skip(log, res, ErrDegenerateGrid)
	}
	nx, ny := GridSize(grid, cfg.DeltaX, cfg.DeltaY)
	if nx > MaxPlacements/ny {
		return c.skip(log, res, fmt.Errorf("%w: %d x %d", ErrTooManyHoles, nx, ny))
	}

	policy := cfg.Policy()
	if !policy.IsNegMask {
		if _, ok := layers.Get(c.Key(RoleGround)); !ok {
			log.Warn("ground layer not found")
			return c.skip(log, res, ErrMissingGround)
		}
	}

	tol := cfg.Tolerance
	if c.opts.tolerance > 0 {
		tol = c.opts.tolerance
	}
	template, err := Template(c.shape, tol)
	if err != nil {
		return c.skip(log, res, err)
	}

	placements := GenerateGrid(grid, cfg.DeltaX, cfg.DeltaY)
	res.Placements = len(placements)
	lattice := PlaceHoles(template, placements)
	log.Debug("hole lattice", "nx", nx, "ny", ny, "template_points", len(template.Exterior))

	var holes PolygonSet
	switch c.opts.keepoutMode {
	case KeepoutWholeHoles:
		holes, err = DropKeepoutHoles(lattice, cfg.Keepout, cfg.Precision)
	default:
		holes, err = SubtractKeepout(lattice, cfg.Keepout, cfg.Precision)
	}
	if err != nil {
		return res, err
	}
	res.Holes = len(holes)
	log.Debug("keep-out subtracted", "mode", c.opts.keepoutMode, "holes", res.Holes)

	// Stage into a scratch set so a failed composition leaves layers as
	// they were.
	scratch := layers.Subset(cfg.Chip, cfg.Layer)
	scratch.Put(c.Key(RoleOneHole), cfg.DatatypeCheese+2, PolygonSet{template})
	if !cfg.Fab && len(cfg.Keepout) > 0 {
		scratch.Put(c.Key(RoleKeepout), cfg.DatatypeKeepout, cfg.Keepout)
	}
	if err := Compose(scratch, policy, holes); err != nil {
		if errors.Is(err, ErrMissingGround) {
			return c.skip(log, res, err)
		}
		return res, err
	}
	layers.Replace(cfg.Chip, cfg.Layer, scratch)

	res.Applied = true
	log.Info("cheesing applied",
		"neg_mask", cfg.IsNegMask, "fab", cfg.Fab,
		"placements", res.Placements, "holes", res.Holes)
	return res, nil
}

func (c *Cheeser) skip(log *slog.Logger, res Result, reason error) (Result, error) {
	log.Warn("cheesing not applied", "reason", reason)
	res.Skipped = reason
	res.Applied = false
	return res, nil
}
