// Package job reads YAML job files that describe a cheesing run over one
// or more chips and turns them into cheesers and their input layers.
//
// A minimal job:
//
//	library: my_chip
//	defaults:
//	  shape_0_x: 25um
//	  shape_0_y: 25um
//	chips:
//	  - name: main
//	    bounds: [-4.5mm, -3mm, 4.5mm, 3mm]
//	    layers:
//	      - layer: 1
//	        keepout:
//	          boxes:
//	            - [-1mm, -1mm, 1mm, 1mm]
//	          paths:
//	            - points: [[-4mm, 2mm], [4mm, 2mm]]
//	              width: 10um
//
// Every cheese parameter may be set under defaults and overridden per
// layer. Lengths are metres or unit strings.
package job

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/cheese"
)

// ErrInvalidJob is returned for a job file that cannot describe a run.
var ErrInvalidJob = errors.New("job: invalid job")

// Job is a parsed job file.
type Job struct {
	// Library names the GDS library; Unit is its user unit.
	Library string `yaml:"library"`
	Unit    Length `yaml:"unit"`

	// Precision is both the Boolean snapping grid and the GDS database
	// unit.
	Precision Length `yaml:"precision"`
	MaxPoints *int   `yaml:"max_points"`

	Fab          bool   `yaml:"fab"`
	AllowOverlap bool   `yaml:"allow_overlap"`
	KeepoutMode  string `yaml:"keepout_mode"`

	// Workers bounds parallel runs; 0 runs every layer at once.
	Workers int `yaml:"workers"`

	Defaults Params `yaml:"defaults"`
	Chips    []Chip `yaml:"chips"`
}

// Params are the per-layer cheese parameters. Unset fields inherit.
type Params struct {
	EdgeNoCheese    *Length `yaml:"edge_nocheese"`
	IsNegMask       *bool   `yaml:"is_neg_mask"`
	DatatypeCheese  *int    `yaml:"datatype_cheese"`
	DatatypeKeepout *int    `yaml:"datatype_keepout"`
	CheeseShape     *Shape  `yaml:"cheese_shape"`
	Shape0X         *Length `yaml:"shape_0_x"`
	Shape0Y         *Length `yaml:"shape_0_y"`
	Shape1Radius    *Length `yaml:"shape_1_radius"`
	DeltaX          *Length `yaml:"delta_x"`
	DeltaY          *Length `yaml:"delta_y"`
	Tolerance       *Length `yaml:"tolerance"`

	// Buffer grows the merged keep-out region on every side. CapStyle
	// and JoinStyle finish trace ends and convex corners.
	Buffer    *Length `yaml:"buffer"`
	CapStyle  *Cap    `yaml:"cap_style"`
	JoinStyle *Join   `yaml:"join_style"`
}

// Chip is one chip of the job.
type Chip struct {
	Name string `yaml:"name"`

	// Bounds is [minX, minY, maxX, maxY].
	Bounds []Length `yaml:"bounds"`

	// Ground replaces the default ground plane, the chip bounds, for
	// positive-mask layers.
	Ground [][][]Length `yaml:"ground"`

	Layers []Layer `yaml:"layers"`
}

// Layer is one cheesed layer of a chip.
type Layer struct {
	Layer   int     `yaml:"layer"`
	Params  `yaml:",inline"`
	Keepout Keepout `yaml:"keepout"`
}

// Keepout lists the no-cheese regions of a layer. Boxes are
// [minX, minY, maxX, maxY], polygons are lists of [x, y] vertices and
// paths are centre lines with a width. The merged region is grown by the
// layer's buffer.
type Keepout struct {
	Boxes    [][]Length   `yaml:"boxes"`
	Polygons [][][]Length `yaml:"polygons"`
	Paths    []Path       `yaml:"paths"`
}

// Path is a keep-out trace: a list of [x, y] points and a full width.
type Path struct {
	Points [][]Length `yaml:"points"`
	Width  Length     `yaml:"width"`
}

// Load reads and parses the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// Parse decodes a job. Unknown keys are rejected.
func Parse(data []byte) (*Job, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	j := &Job{}
	if err := dec.Decode(j); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidJob)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	if err := j.check(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Job) check() error {
	var errs []error
	if len(j.Chips) == 0 {
		errs = append(errs, errors.New("no chips"))
	}
	if _, err := j.keepoutMode(); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool)
	for i, c := range j.Chips {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("chip %d has no name", i))
		} else if seen[c.Name] {
			errs = append(errs, fmt.Errorf("chip %q listed twice", c.Name))
		}
		seen[c.Name] = true
		if len(c.Bounds) != 4 {
			errs = append(errs, fmt.Errorf("chip %q: bounds needs 4 values, got %d", c.Name, len(c.Bounds)))
		}
		layers := make(map[int]bool)
		for _, l := range c.Layers {
			if layers[l.Layer] {
				errs = append(errs, fmt.Errorf("chip %q: layer %d listed twice", c.Name, l.Layer))
			}
			layers[l.Layer] = true
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	return nil
}

func (j *Job) keepoutMode() (cheese.KeepoutMode, error) {
	switch j.KeepoutMode {
	case "", "clip":
		return cheese.KeepoutClip, nil
	case "whole":
		return cheese.KeepoutWholeHoles, nil
	default:
		return 0, fmt.Errorf("keepout_mode %q is not clip or whole", j.KeepoutMode)
	}
}

// LibraryName returns the GDS library name, "cheese" when unset.
func (j *Job) LibraryName() string {
	if j.Library == "" {
		return "cheese"
	}
	return j.Library
}

// UnitOrDefault returns the GDS user unit, 1µm when unset.
func (j *Job) UnitOrDefault() float64 {
	if j.Unit > 0 {
		return float64(j.Unit)
	}
	return 1e-6
}

// PrecisionOrDefault returns the precision, 1nm when unset.
func (j *Job) PrecisionOrDefault() float64 {
	if j.Precision > 0 {
		return float64(j.Precision)
	}
	return cheese.DefaultConfig().Precision
}

// MaxPointsOrDefault returns the fracturing limit, 199 when unset.
func (j *Job) MaxPointsOrDefault() int {
	if j.MaxPoints != nil {
		return *j.MaxPoints
	}
	return cheese.DefaultConfig().MaxPoints
}

// Options returns the cheeser options of the job.
func (j *Job) Options() []cheese.Option {
	var opts []cheese.Option
	if j.AllowOverlap {
		opts = append(opts, cheese.WithOverlapAllowed())
	}
	if mode, err := j.keepoutMode(); err == nil {
		opts = append(opts, cheese.WithKeepoutMode(mode))
	}
	return opts
}

// defaultBuffer is the keep-out growth when no buffer is set.
const defaultBuffer = 25e-6

// Configs returns one configuration per chip layer, in file order.
// Keep-out regions are merged and grown here.
func (j *Job) Configs() ([]cheese.Config, error) {
	var out []cheese.Config
	for _, chip := range j.Chips {
		bounds, err := rect(chip.Bounds)
		if err != nil {
			return nil, fmt.Errorf("%w: chip %q: %w", ErrInvalidJob, chip.Name, err)
		}
		for _, l := range chip.Layers {
			cfg := cheese.DefaultConfig()
			cfg.Chip = chip.Name
			cfg.Bounds = bounds
			cfg.Layer = l.Layer
			cfg.Precision = j.PrecisionOrDefault()
			cfg.MaxPoints = j.MaxPointsOrDefault()
			cfg.Fab = j.Fab

			src := cheese.KeepoutSource{Buffer: defaultBuffer}
			j.Defaults.apply(&cfg, &src)
			l.Params.apply(&cfg, &src)

			src.Polygons, err = polygons(l.Keepout.Polygons)
			if err != nil {
				return nil, fmt.Errorf("%w: chip %q layer %d keepout: %w", ErrInvalidJob, chip.Name, l.Layer, err)
			}
			for _, b := range l.Keepout.Boxes {
				r, err := rect(b)
				if err != nil {
					return nil, fmt.Errorf("%w: chip %q layer %d keepout: %w", ErrInvalidJob, chip.Name, l.Layer, err)
				}
				src.Boxes = append(src.Boxes, r)
			}
			src.Traces, err = traces(l.Keepout.Paths)
			if err != nil {
				return nil, fmt.Errorf("%w: chip %q layer %d keepout: %w", ErrInvalidJob, chip.Name, l.Layer, err)
			}
			cfg.Keepout, err = cheese.PrepareKeepout(bounds, src, cfg.Precision)
			if err != nil {
				return nil, fmt.Errorf("chip %q layer %d: %w", chip.Name, l.Layer, err)
			}
			out = append(out, cfg)
		}
	}
	return out, nil
}

func (p Params) apply(cfg *cheese.Config, src *cheese.KeepoutSource) {
	setLength(&cfg.EdgeNoCheese, p.EdgeNoCheese)
	setLength(&cfg.Shape0X, p.Shape0X)
	setLength(&cfg.Shape0Y, p.Shape0Y)
	setLength(&cfg.Shape1Radius, p.Shape1Radius)
	setLength(&cfg.DeltaX, p.DeltaX)
	setLength(&cfg.DeltaY, p.DeltaY)
	setLength(&cfg.Tolerance, p.Tolerance)
	if p.IsNegMask != nil {
		cfg.IsNegMask = *p.IsNegMask
	}
	if p.DatatypeCheese != nil {
		cfg.DatatypeCheese = *p.DatatypeCheese
	}
	if p.DatatypeKeepout != nil {
		cfg.DatatypeKeepout = *p.DatatypeKeepout
	}
	if p.CheeseShape != nil {
		cfg.CheeseShape = cheese.ShapeKind(*p.CheeseShape)
	}
	setLength(&src.Buffer, p.Buffer)
	if p.CapStyle != nil {
		src.Cap = cheese.CapStyle(*p.CapStyle)
	}
	if p.JoinStyle != nil {
		src.Join = cheese.JoinStyle(*p.JoinStyle)
	}
}

func setLength(dst *float64, v *Length) {
	if v != nil {
		*dst = float64(*v)
	}
}

// Cheesers builds a cheeser for every chip layer.
func (j *Job) Cheesers() ([]*cheese.Cheeser, error) {
	cfgs, err := j.Configs()
	if err != nil {
		return nil, err
	}
	opts := j.Options()
	out := make([]*cheese.Cheeser, 0, len(cfgs))
	for _, cfg := range cfgs {
		c, err := cheese.NewCheeser(cfg, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Ground returns the input layer set: a ground plane for every
// positive-mask chip layer.
func (j *Job) Ground(cfgs []cheese.Config) (*cheese.Layers, error) {
	planes := make(map[string]cheese.PolygonSet)
	for _, chip := range j.Chips {
		if len(chip.Ground) == 0 {
			continue
		}
		polys, err := polygons(chip.Ground)
		if err != nil {
			return nil, fmt.Errorf("%w: chip %q ground: %w", ErrInvalidJob, chip.Name, err)
		}
		planes[chip.Name] = polys
	}

	layers := cheese.NewLayers()
	for _, cfg := range cfgs {
		if cfg.IsNegMask {
			continue
		}
		plane, ok := planes[cfg.Chip]
		if !ok {
			plane = cheese.PolygonSet{cfg.Bounds.Polygon()}
		}
		key := cheese.LayerKey{Chip: cfg.Chip, Layer: cfg.Layer, Role: cheese.RoleGround}
		layers.Put(key, 0, plane.Clone())
	}
	return layers, nil
}

func rect(v []Length) (cheese.Rect, error) {
	if len(v) != 4 {
		return cheese.Rect{}, fmt.Errorf("box needs 4 values, got %d", len(v))
	}
	r := cheese.R(float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3]))
	if r.Empty() {
		return cheese.Rect{}, fmt.Errorf("box %v is empty", v)
	}
	return r, nil
}

func polygons(rings [][][]Length) (cheese.PolygonSet, error) {
	var out cheese.PolygonSet
	for i, ring := range rings {
		if len(ring) < 3 {
			return nil, fmt.Errorf("polygon %d has %d vertices", i, len(ring))
		}
		pts := make([]cheese.Point, len(ring))
		for k, v := range ring {
			if len(v) != 2 {
				return nil, fmt.Errorf("polygon %d vertex %d needs 2 values", i, k)
			}
			pts[k] = cheese.Pt(float64(v[0]), float64(v[1]))
		}
		out = append(out, cheese.Polygon{Exterior: pts})
	}
	return out, nil
}

func traces(paths []Path) ([]cheese.Trace, error) {
	var out []cheese.Trace
	for i, p := range paths {
		if len(p.Points) < 2 {
			return nil, fmt.Errorf("path %d has %d points", i, len(p.Points))
		}
		if !(p.Width > 0) {
			return nil, fmt.Errorf("path %d width %g must be > 0", i, float64(p.Width))
		}
		pts := make([]cheese.Point, len(p.Points))
		for k, v := range p.Points {
			if len(v) != 2 {
				return nil, fmt.Errorf("path %d point %d needs 2 values", i, k)
			}
			pts[k] = cheese.Pt(float64(v[0]), float64(v[1]))
		}
		out = append(out, cheese.Trace{Points: pts, Width: float64(p.Width)})
	}
	return out, nil
}
