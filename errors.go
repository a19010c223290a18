package cheese

import "errors"

var (
	// ErrInvalidConfig is returned by NewCheeser for a malformed Config.
	ErrInvalidConfig = errors.New("cheese: invalid config")

	// ErrSpacingTooSmall reports a lattice spacing that does not exceed
	// the hole extent, so neighbouring holes would touch or overlap.
	ErrSpacingTooSmall = errors.New("cheese: hole spacing is same as or smaller than hole")

	// ErrUnsupportedShape reports a hole shape kind the cheeser cannot build.
	ErrUnsupportedShape = errors.New("cheese: unsupported hole shape")

	// ErrDegenerateGrid reports a chip too small for its edge margin.
	ErrDegenerateGrid = errors.New("cheese: grid rectangle is empty after edge margin")

	// ErrTooManyHoles reports a lattice above MaxPlacements.
	ErrTooManyHoles = errors.New("cheese: too many hole placements")

	// ErrMissingGround reports a positive-mask run without a ground layer.
	ErrMissingGround = errors.New("cheese: ground layer not found")

	// ErrGeometry wraps failures of the polygon Boolean engine. It is the
	// only error that aborts a run.
	ErrGeometry = errors.New("cheese: geometry operation failed")

	// ErrDuplicateRun reports two cheesers for the same chip and layer in
	// one batch.
	ErrDuplicateRun = errors.New("cheese: duplicate chip/layer in batch")
)
