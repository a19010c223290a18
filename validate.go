package cheese

// Outcome is the result of the pre-flight hole/spacing check.
type Outcome int

const (
	// OutcomeOK means the lattice spacing clears the hole on both axes.
	OutcomeOK Outcome = iota
	// OutcomeSpacingTooSmall means delta_x or delta_y does not exceed the
	// hole extent on that axis.
	OutcomeSpacingTooSmall
	// OutcomeUnsupportedShape means the hole shape kind is unknown.
	OutcomeUnsupportedShape
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSpacingTooSmall:
		return "spacing too small"
	case OutcomeUnsupportedShape:
		return "unsupported shape"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error matching o, or nil for OutcomeOK.
func (o Outcome) Err() error {
	switch o {
	case OutcomeOK:
		return nil
	case OutcomeSpacingTooSmall:
		return ErrSpacingTooSmall
	default:
		return ErrUnsupportedShape
	}
}

// Validate checks the hole shape against the lattice spacing. Spacing
// equal to the hole extent fails: the comparison is strict.
func Validate(shape HoleShape, deltaX, deltaY float64) Outcome {
	if shape == nil {
		return OutcomeUnsupportedShape
	}
	switch shape.(type) {
	case Rectangle, Circle:
	default:
		return OutcomeUnsupportedShape
	}
	w, h := shape.BoundingExtent()
	if deltaX <= w || deltaY <= h {
		return OutcomeSpacingTooSmall
	}
	return OutcomeOK
}
