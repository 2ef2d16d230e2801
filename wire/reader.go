// Package wire implements the protobuf-compatible tagged-field stream that
// every MVT message (Tile, Layer, Feature, PropertyValue) is built from:
// varint and zigzag-32 primitives, length-delimited fields, and packed
// repeated scalars.
//
// Reader is zero-copy: it never allocates or copies payload bytes, it only
// returns sub-slices of the buffer it was given. The caller must keep that
// buffer alive and unmodified for as long as any DataView derived from it
// is in use, per format.DataView's contract.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
)

// Reader walks a tagged-field byte stream from front to back. It holds no
// hidden state beyond its current read position, so it can be copied by
// value to save/restore a position.
type Reader struct {
	data format.DataView
	pos  int
}

// NewReader creates a Reader over data. The Reader does not copy data.
func NewReader(data format.DataView) *Reader {
	return &Reader{data: data}
}

// Len reports the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Done reports whether the stream has been fully consumed.
func (r *Reader) Done() bool { return r.pos >= len(r.data) }

// Pos returns the current byte offset into the underlying buffer.
func (r *Reader) Pos() int { return r.pos }

// Varint decodes an unsigned LEB128 varint. It fails with ErrMalformedWire
// if the stream is truncated mid-varint or the varint is encoded in more
// than the 10 bytes needed to hold a 64-bit value.
func (r *Reader) Varint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n == 0 {
		return 0, fmt.Errorf("%w: truncated varint", errs.ErrMalformedWire)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: varint overflows 64 bits", errs.ErrMalformedWire)
	}
	r.pos += n

	return v, nil
}

// Zigzag32 decodes a zigzag-encoded 32-bit signed integer: a varint whose
// value is un-zigzagged with 32-bit semantics, matching the MVT geometry
// command stream's parameter encoding.
func (r *Reader) Zigzag32() (int32, error) {
	v, err := r.Varint()
	if err != nil {
		return 0, err
	}
	u := uint32(v) //nolint:gosec // MVT parameters are defined as 32-bit.

	return int32(u>>1) ^ -int32(u&1), nil
}

// Fixed32 decodes a little-endian 32-bit fixed field (wire type 5).
func (r *Reader) Fixed32() (uint32, error) {
	if r.Len() < 4 {
		return 0, fmt.Errorf("%w: truncated fixed32", errs.ErrMalformedWire)
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4

	return v, nil
}

// Fixed64 decodes a little-endian 64-bit fixed field (wire type 1).
func (r *Reader) Fixed64() (uint64, error) {
	if r.Len() < 8 {
		return 0, fmt.Errorf("%w: truncated fixed64", errs.ErrMalformedWire)
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return v, nil
}

// Float decodes a 32-bit IEEE-754 float (wire type 5).
func (r *Reader) Float() (float32, error) {
	bits, err := r.Fixed32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// Double decodes a 64-bit IEEE-754 double (wire type 1).
func (r *Reader) Double() (float64, error) {
	bits, err := r.Fixed64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(bits), nil
}

// Tag decodes a field key varint and splits it into its field number and
// wire type, per the protobuf tag encoding: (field_number << 3) | wire_type.
func (r *Reader) Tag() (field int, wireType format.WireType, err error) {
	v, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}

	return int(v >> 3), format.WireType(v & 0x7), nil
}

// Bytes reads a length-delimited field's declared length and returns the
// sub-slice of the stream it covers, advancing past it. It fails with
// ErrMalformedWire if the declared length exceeds the remaining bytes.
func (r *Reader) Bytes() (format.DataView, error) {
	n, err := r.Varint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: length-delimited field declares %d bytes, %d remain", errs.ErrMalformedWire, n, r.Len())
	}
	start := r.pos
	r.pos += int(n)

	return r.data[start:r.pos], nil
}

// SkipValue skips over the value following a tag of the given wire type,
// without interpreting it. Used to implement "skip unknown fields", which
// must never fail on an unrecognized but well-formed tag.
func (r *Reader) SkipValue(wireType format.WireType) error {
	switch wireType {
	case format.WireVarint:
		_, err := r.Varint()
		return err
	case format.WireFixed64:
		_, err := r.Fixed64()
		return err
	case format.WireBytes:
		_, err := r.Bytes()
		return err
	case format.WireFixed32:
		_, err := r.Fixed32()
		return err
	default:
		return fmt.Errorf("%w: unknown wire type %d", errs.ErrMalformedWire, wireType)
	}
}

// PackedUint32 returns an iterator-free decoded slice of a packed repeated
// varint field's sub-message (as produced by Bytes()). Used for feature tags
// and map/list index streams where random access by index is wanted.
func PackedUint32(data format.DataView) ([]uint32, error) {
	rd := NewReader(data)
	out := make([]uint32, 0, len(data)/2)
	for !rd.Done() {
		v, err := rd.Varint()
		if err != nil {
			return nil, err
		}
		out = append(out, uint32(v)) //nolint:gosec
	}

	return out, nil
}

// PackedDouble decodes a packed repeated fixed64 double field (used for the
// spline knots stream).
func PackedDouble(data format.DataView) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: packed double length %d not a multiple of 8", errs.ErrMalformedWire, len(data))
	}
	out := make([]float64, 0, len(data)/8)
	for i := 0; i < len(data); i += 8 {
		bits := binary.LittleEndian.Uint64(data[i : i+8])
		out = append(out, math.Float64frombits(bits))
	}

	return out, nil
}
