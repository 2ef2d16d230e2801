package geom

import (
	"fmt"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/wire"
)

// Encoder builds a geometry command/parameter stream from absolute points,
// used by the feature builders of §4.7. Its cursor persists across calls,
// matching the decoder's rule that every MoveTo continues from the
// previous cursor position within a feature.
type Encoder struct {
	w    *wire.Writer
	cur  Point
	dims int
}

// NewEncoder creates an Encoder for the given coordinate dimensionality (2
// or 3).
func NewEncoder(dims int) *Encoder {
	return &Encoder{w: wire.NewWriter(), dims: dims}
}

// Release returns the Encoder's backing buffer to its pool.
func (e *Encoder) Release() { e.w.Release() }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return e.w.Len() }

// Bytes returns the accumulated command stream bytes.
func (e *Encoder) Bytes() []byte { return e.w.Bytes() }

// Truncate discards everything written after byte offset n.
func (e *Encoder) Truncate(n int) { e.w.Truncate(n) }

func commandWord(id, count int) uint64 {
	return uint64(id) | uint64(count)<<3 //nolint:gosec
}

func (e *Encoder) writeDelta(p Point) {
	dx := p.X - e.cur.X
	dy := p.Y - e.cur.Y
	e.w.Zigzag32(int32(dx)) //nolint:gosec
	e.w.Zigzag32(int32(dy)) //nolint:gosec
	if e.dims == 3 {
		dz := p.Z - e.cur.Z
		e.w.Zigzag32(int32(dz)) //nolint:gosec
	}
	e.cur = p
}

func rejectZeroLength(points []Point) error {
	for i := 1; i < len(points); i++ {
		if points[i] == points[i-1] {
			return fmt.Errorf("%w: zero-length segment at point %d", errs.ErrGeometry, i)
		}
	}

	return nil
}

// Point emits a POINT geometry: a single MoveTo carrying every point.
func (e *Encoder) Point(points []Point) error {
	if len(points) < 1 {
		return fmt.Errorf("%w: POINT geometry requires at least one point", errs.ErrGeometry)
	}
	if err := rejectZeroLength(points); err != nil {
		return err
	}
	if len(points) > format.MaxCommandCount {
		return fmt.Errorf("%w: point count %d exceeds command budget", errs.ErrFormat, len(points))
	}

	e.w.Varint(commandWord(format.CmdMoveTo, len(points)))
	for _, p := range points {
		e.writeDelta(p)
	}

	return nil
}

// LineString emits one LINESTRING strand: MoveTo(1) for the first point,
// LineTo(n-1) for the rest.
func (e *Encoder) LineString(points []Point) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: LINESTRING requires at least 2 points", errs.ErrGeometry)
	}
	if err := rejectZeroLength(points); err != nil {
		return err
	}
	if len(points)-1 > format.MaxCommandCount {
		return fmt.Errorf("%w: linestring point count %d exceeds command budget", errs.ErrFormat, len(points))
	}

	e.w.Varint(commandWord(format.CmdMoveTo, 1))
	e.writeDelta(points[0])
	e.w.Varint(commandWord(format.CmdLineTo, len(points)-1))
	for _, p := range points[1:] {
		e.writeDelta(p)
	}

	return nil
}

// Ring emits one POLYGON ring. points must be closed: points[0] ==
// points[len-1]. The wire form drops the duplicated closing point in favor
// of an explicit ClosePath command, matching how Decode reconstructs it.
func (e *Encoder) Ring(points []Point) error {
	if len(points) < 4 {
		return fmt.Errorf("%w: polygon ring requires at least 4 points (3 distinct, closed)", errs.ErrGeometry)
	}
	if points[0] != points[len(points)-1] {
		return fmt.Errorf("%w: polygon ring's final point must equal its first point", errs.ErrGeometry)
	}
	unique := points[:len(points)-1]
	if err := rejectZeroLength(points); err != nil {
		return err
	}
	if len(unique)-1 > format.MaxCommandCount {
		return fmt.Errorf("%w: ring point count %d exceeds command budget", errs.ErrFormat, len(points))
	}

	e.w.Varint(commandWord(format.CmdMoveTo, 1))
	e.writeDelta(unique[0])
	e.w.Varint(commandWord(format.CmdLineTo, len(unique)-1))
	for _, p := range unique[1:] {
		e.writeDelta(p)
	}
	e.w.Varint(commandWord(format.CmdClosePath, 1))

	return nil
}

// EncodeKnots packs a spline's knot vector into the wire's repeated double
// form, for storage in Feature.knots.
func EncodeKnots(values []float64) []byte {
	return wire.AppendPackedDouble(values)
}
