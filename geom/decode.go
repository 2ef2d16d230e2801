package geom

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/wire"
)

// Decode walks geometry, a packed command/parameter stream, interpreting it
// per the grammar for gt, and delivers events to handler. dims must be 2 or
// 3; knots is only consulted for format.GeomSpline and may be nil
// otherwise.
//
// Decode never allocates beyond the wire.Reader it constructs: it streams
// commands and parameters directly from geometry without materializing an
// intermediate slice.
func Decode(geometry, knots format.DataView, gt format.GeomType, dims int, handler any) error {
	if dims != 2 && dims != 3 {
		return fmt.Errorf("%w: geometry dimensions %d", errs.ErrUnsupportedVersion, dims)
	}

	r := wire.NewReader(geometry)
	switch gt {
	case format.GeomPoint:
		return decodePoint(r, dims, handler)
	case format.GeomLineString:
		return decodeLineStrings(r, dims, handler)
	case format.GeomPolygon:
		return decodePolygons(r, dims, handler)
	case format.GeomSpline:
		return decodeSpline(r, knots, dims, handler)
	default:
		return fmt.Errorf("%w: unrecognized geometry type %d", errs.ErrGeometry, gt)
	}
}

// DecodeResult behaves like Decode but additionally returns handler's
// Result() value on success, if handler implements Resulter[T].
func DecodeResult[T any](geometry, knots format.DataView, gt format.GeomType, dims int, handler any) (T, error) {
	var zero T
	if err := Decode(geometry, knots, gt, dims, handler); err != nil {
		return zero, err
	}
	if rh, ok := handler.(Resulter[T]); ok {
		return rh.Result(), nil
	}

	return zero, nil
}

// command reads one command integer, splitting it into id and count, and
// rejects a count beyond the wire format's 29-bit budget.
func command(r *wire.Reader) (id, count int, err error) {
	if r.Done() {
		return 0, 0, fmt.Errorf("%w: command stream ended unexpectedly", errs.ErrGeometry)
	}
	v, err := r.Varint()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errs.ErrGeometry, err)
	}
	id = int(v & 0x7)
	count = int(v >> 3)
	if count > format.MaxCommandCount {
		return 0, 0, fmt.Errorf("%w: command count %d exceeds maximum", errs.ErrFormat, count)
	}

	return id, count, nil
}

// applyDelta reads dims zig-zag parameters and advances cur in place,
// returning the new absolute point.
func applyDelta(r *wire.Reader, dims int, cur *Point) (Point, error) {
	dx, err := r.Zigzag32()
	if err != nil {
		return Point{}, err
	}
	dy, err := r.Zigzag32()
	if err != nil {
		return Point{}, err
	}
	cur.X += int64(dx)
	cur.Y += int64(dy)
	if dims == 3 {
		dz, err := r.Zigzag32()
		if err != nil {
			return Point{}, err
		}
		cur.Z += int64(dz)
	}

	return *cur, nil
}

func decodePoint(r *wire.Reader, dims int, handler any) error {
	id, count, err := command(r)
	if err != nil {
		return err
	}
	if id != format.CmdMoveTo {
		return fmt.Errorf("%w: expected MoveTo, got command %d", errs.ErrGeometry, id)
	}
	if count < 1 {
		return fmt.Errorf("%w: POINT MoveTo count must be >= 1", errs.ErrGeometry)
	}

	h, _ := handler.(PointsHandler)
	if h != nil {
		h.PointsBegin(count)
	}

	var cur Point
	for i := 0; i < count; i++ {
		p, err := applyDelta(r, dims, &cur)
		if err != nil {
			return err
		}
		if h != nil {
			h.PointsPoint(p)
		}
	}
	if h != nil {
		h.PointsEnd()
	}

	if !r.Done() {
		return fmt.Errorf("%w: trailing data after POINT geometry", errs.ErrGeometry)
	}

	return nil
}

func decodeLineStrings(r *wire.Reader, dims int, handler any) error {
	h, _ := handler.(LineStringHandler)
	var cur Point

	for !r.Done() {
		id, count, err := command(r)
		if err != nil {
			return err
		}
		if id != format.CmdMoveTo || count != 1 {
			return fmt.Errorf("%w: expected MoveTo(1) to start a LINESTRING", errs.ErrGeometry)
		}
		start, err := applyDelta(r, dims, &cur)
		if err != nil {
			return err
		}

		id, lineCount, err := command(r)
		if err != nil {
			return err
		}
		if id != format.CmdLineTo || lineCount < 1 {
			return fmt.Errorf("%w: expected LineTo(>=1) after MoveTo in LINESTRING", errs.ErrGeometry)
		}

		if h != nil {
			h.LineStringBegin(1 + lineCount)
			h.LineStringPoint(start)
		}
		for i := 0; i < lineCount; i++ {
			p, err := applyDelta(r, dims, &cur)
			if err != nil {
				return err
			}
			if h != nil {
				h.LineStringPoint(p)
			}
		}
		if h != nil {
			h.LineStringEnd()
		}
	}

	return nil
}

func decodePolygons(r *wire.Reader, dims int, handler any) error {
	h, _ := handler.(RingHandler)
	var cur Point

	for !r.Done() {
		id, count, err := command(r)
		if err != nil {
			return err
		}
		if id != format.CmdMoveTo || count != 1 {
			return fmt.Errorf("%w: expected MoveTo(1) to start a polygon ring", errs.ErrGeometry)
		}
		start, err := applyDelta(r, dims, &cur)
		if err != nil {
			return err
		}

		id, lineCount, err := command(r)
		if err != nil {
			return err
		}
		if id != format.CmdLineTo || lineCount < 1 {
			return fmt.Errorf("%w: expected LineTo(>=1) after ring MoveTo", errs.ErrGeometry)
		}

		if h != nil {
			h.RingBegin(lineCount + 2)
			h.RingPoint(start)
		}

		var area int64
		prev := start
		for i := 0; i < lineCount; i++ {
			p, err := applyDelta(r, dims, &cur)
			if err != nil {
				return err
			}
			area += prev.X*p.Y - p.X*prev.Y
			if h != nil {
				h.RingPoint(p)
			}
			prev = p
		}

		id, closeCount, err := command(r)
		if err != nil {
			return err
		}
		if id != format.CmdClosePath {
			return fmt.Errorf("%w: expected ClosePath to end a polygon ring", errs.ErrGeometry)
		}
		if closeCount != 1 {
			return fmt.Errorf("%w: ClosePath count must be 1, got %d", errs.ErrGeometry, closeCount)
		}
		area += prev.X*start.Y - start.X*prev.Y

		if h != nil {
			h.RingPoint(start)
			h.RingEnd(classifyRing(area))
		}
	}

	return nil
}

func classifyRing(area int64) format.RingType {
	switch {
	case area > 0:
		return format.RingOuter
	case area < 0:
		return format.RingInner
	default:
		return format.RingInvalid
	}
}

func decodeSpline(r *wire.Reader, knots format.DataView, dims int, handler any) error {
	cph, _ := handler.(ControlPointsHandler)
	var cur Point

	id, count, err := command(r)
	if err != nil {
		return err
	}
	if id != format.CmdMoveTo || count != 1 {
		return fmt.Errorf("%w: expected MoveTo(1) to start a SPLINE", errs.ErrGeometry)
	}
	start, err := applyDelta(r, dims, &cur)
	if err != nil {
		return err
	}

	id, lineCount, err := command(r)
	if err != nil {
		return err
	}
	if id != format.CmdLineTo || lineCount < 1 {
		return fmt.Errorf("%w: expected LineTo(>=1) after SPLINE MoveTo", errs.ErrGeometry)
	}

	if cph != nil {
		cph.ControlPointsBegin(1 + lineCount)
		cph.ControlPointsPoint(start)
	}
	for i := 0; i < lineCount; i++ {
		p, err := applyDelta(r, dims, &cur)
		if err != nil {
			return err
		}
		if cph != nil {
			cph.ControlPointsPoint(p)
		}
	}
	if cph != nil {
		cph.ControlPointsEnd()
	}
	if !r.Done() {
		return fmt.Errorf("%w: trailing data after SPLINE control points", errs.ErrGeometry)
	}

	if len(knots)%8 != 0 {
		return fmt.Errorf("%w: packed double length %d not a multiple of 8", errs.ErrMalformedWire, len(knots))
	}
	if kh, ok := handler.(KnotsHandler); ok {
		kh.KnotsBegin(len(knots) / 8)
		for i := 0; i < len(knots); i += 8 {
			kh.KnotsValue(math.Float64frombits(binary.LittleEndian.Uint64(knots[i : i+8])))
		}
		kh.KnotsEnd()
	}

	return nil
}
