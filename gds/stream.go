package gds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gogpu/cheese"
)

// Record types, with the data type in the low byte.
const (
	recHeader   = 0x0002
	recBgnLib   = 0x0102
	recLibName  = 0x0206
	recUnits    = 0x0305
	recEndLib   = 0x0400
	recBgnStr   = 0x0502
	recStrName  = 0x0606
	recEndStr   = 0x0700
	recBoundary = 0x0800
	recSRef     = 0x0A00
	recLayer    = 0x0D02
	recDatatype = 0x0E02
	recXY       = 0x1003
	recEndEl    = 0x1100
	recSName    = 0x1206
)

const streamVersion = 600

// WriteTo streams the library as GDSII. It implements io.WriterTo.
func (lib *Library) WriteTo(w io.Writer) (int64, error) {
	if !(lib.Precision > 0) || !(lib.Unit > 0) {
		return 0, fmt.Errorf("gds: library %q: unit %v and precision %v must be > 0", lib.Name, lib.Unit, lib.Precision)
	}
	names := make(map[string]bool, len(lib.Cells))
	for _, c := range lib.Cells {
		names[c.Name] = true
	}

	bw := bufio.NewWriter(w)
	rw := &recordWriter{w: bw}
	stamp := timestamp(lib.Timestamp)

	rw.int16s(recHeader, streamVersion)
	rw.int16s(recBgnLib, stamp...)
	rw.str(recLibName, lib.Name)
	rw.reals(recUnits, lib.Precision/lib.Unit, lib.Precision)

	for _, c := range lib.Cells {
		rw.int16s(recBgnStr, stamp...)
		rw.str(recStrName, c.Name)
		for _, b := range c.Boundaries {
			if len(b.Points) > MaxBoundaryPoints {
				return rw.n, fmt.Errorf("%w: cell %s", ErrTooManyPoints, c.Name)
			}
			xy, err := lib.coords(b.Points, true)
			if err != nil {
				return rw.n, fmt.Errorf("cell %s: %w", c.Name, err)
			}
			rw.none(recBoundary)
			rw.int16s(recLayer, int16(b.Layer))
			rw.int16s(recDatatype, int16(b.Datatype))
			rw.int32s(recXY, xy...)
			rw.none(recEndEl)
		}
		for _, r := range c.Refs {
			if !names[r.Name] {
				return rw.n, fmt.Errorf("%w: %s referenced from %s", ErrUnknownCell, r.Name, c.Name)
			}
			xy, err := lib.coords([]cheese.Point{r.Origin}, false)
			if err != nil {
				return rw.n, fmt.Errorf("cell %s: %w", c.Name, err)
			}
			rw.none(recSRef)
			rw.str(recSName, r.Name)
			rw.int32s(recXY, xy...)
			rw.none(recEndEl)
		}
		rw.none(recEndStr)
	}
	rw.none(recEndLib)

	if rw.err != nil {
		return rw.n, rw.err
	}
	return rw.n, bw.Flush()
}

// coords converts points to database units, repeating the first point
// when closed is set.
func (lib *Library) coords(pts []cheese.Point, closed bool) ([]int32, error) {
	out := make([]int32, 0, 2*len(pts)+2)
	for _, p := range pts {
		x, y := math.Round(p.X/lib.Precision), math.Round(p.Y/lib.Precision)
		if !(x >= math.MinInt32 && x <= math.MaxInt32 && y >= math.MinInt32 && y <= math.MaxInt32) {
			return nil, fmt.Errorf("%w: (%g, %g)", ErrCoordinateRange, p.X, p.Y)
		}
		out = append(out, int32(x), int32(y))
	}
	if closed && len(out) >= 2 {
		out = append(out, out[0], out[1])
	}
	return out, nil
}

func timestamp(t time.Time) []int16 {
	if t.IsZero() {
		t = time.Unix(0, 0).UTC()
	}
	v := []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
	return append(v, v...)
}

// recordWriter writes GDSII records and keeps the first error.
type recordWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (rw *recordWriter) record(rt uint16, data []byte) {
	if rw.err != nil {
		return
	}
	if len(data)+4 > math.MaxUint16 {
		rw.err = fmt.Errorf("gds: record %#04x too long (%d bytes)", rt, len(data))
		return
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:], uint16(len(data)+4))
	binary.BigEndian.PutUint16(hdr[2:], rt)
	n, err := rw.w.Write(hdr[:])
	rw.n += int64(n)
	if err != nil {
		rw.err = err
		return
	}
	n, err = rw.w.Write(data)
	rw.n += int64(n)
	rw.err = err
}

func (rw *recordWriter) none(rt uint16) { rw.record(rt, nil) }

func (rw *recordWriter) int16s(rt uint16, vs ...int16) {
	data := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint16(data[2*i:], uint16(v))
	}
	rw.record(rt, data)
}

func (rw *recordWriter) int32s(rt uint16, vs ...int32) {
	data := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(data[4*i:], uint32(v))
	}
	rw.record(rt, data)
}

func (rw *recordWriter) reals(rt uint16, vs ...float64) {
	data := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint64(data[8*i:], real8(v))
	}
	rw.record(rt, data)
}

// str writes an ASCII string padded with NUL to an even length.
func (rw *recordWriter) str(rt uint16, s string) {
	data := []byte(s)
	if len(data)%2 == 1 {
		data = append(data, 0)
	}
	rw.record(rt, data)
}

// real8 encodes v in the GDSII 8-byte real format: sign bit, excess-64
// base-16 exponent and a 56-bit mantissa in [1/16, 1).
func real8(v float64) uint64 {
	if v == 0 {
		return 0
	}
	var sign uint64
	if v < 0 {
		sign = 1 << 63
		v = -v
	}
	exp := 0
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}
	mant := uint64(math.Round(v * (1 << 56)))
	if mant >= 1<<56 {
		mant >>= 4
		exp++
	}
	return sign | uint64(exp+64)<<56 | mant
}
