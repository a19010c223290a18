package cheese

// Option configures a Cheeser during creation.
//
// Example:
//
//	// Default: skip the layer when holes would overlap
//	c, err := cheese.NewCheeser(cfg)
//
//	// Place the lattice anyway and drop holes that meet the keep-out
//	c, err := cheese.NewCheeser(cfg,
//		cheese.WithOverlapAllowed(),
//		cheese.WithKeepoutMode(cheese.KeepoutWholeHoles))
type Option func(*options)

// options holds optional configuration for Cheeser creation.
type options struct {
	allowOverlap bool
	keepoutMode  KeepoutMode
	tolerance    float64
}

// defaultOptions returns the default cheeser options.
func defaultOptions() options {
	return options{
		allowOverlap: false,
		keepoutMode:  KeepoutClip,
	}
}

// WithOverlapAllowed keeps cheesing when the spacing check fails. The
// warning is still logged and the holes of the lattice overlap.
func WithOverlapAllowed() Option {
	return func(o *options) {
		o.allowOverlap = true
	}
}

// WithKeepoutMode selects whether holes meeting the keep-out are clipped
// (the default) or dropped whole.
func WithKeepoutMode(m KeepoutMode) Option {
	return func(o *options) {
		o.keepoutMode = m
	}
}

// WithTolerance overrides Config.Tolerance, the chord error allowed when
// flattening circular holes. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}
