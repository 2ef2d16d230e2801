package value

import (
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/wire"
)

// The Encode* functions each produce a standalone encoded PropertyValue
// message (tag + payload) suitable for interning into a table.ValueTable.
// Every call allocates its own copy of the result, since wire.Writer's
// backing buffer is pooled and reused after Release.

func encode(fn func(w *wire.Writer)) format.DataView {
	w := wire.NewWriter()
	defer w.Release()
	fn(w)
	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// EncodeString encodes a string_value field.
func EncodeString(s string) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueStringField, format.WireBytes)
		w.WriteString(s)
	})
}

// EncodeFloat encodes a float_value field.
func EncodeFloat(f float32) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueFloatField, format.WireFixed32)
		w.Float(f)
	})
}

// EncodeDouble encodes a double_value field.
func EncodeDouble(d float64) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueDoubleField, format.WireFixed64)
		w.Double(d)
	})
}

// EncodeInt encodes an int_value field using plain (non-zigzag) varint
// encoding of the two's-complement bit pattern.
func EncodeInt(i int64) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueIntField, format.WireVarint)
		w.Varint(uint64(i))
	})
}

// EncodeUint encodes a uint_value field.
func EncodeUint(u uint64) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueUintField, format.WireVarint)
		w.Varint(u)
	})
}

// EncodeSint encodes a sint_value field using zigzag varint encoding.
func EncodeSint(i int64) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueSintField, format.WireVarint)
		zz := uint64(i<<1) ^ uint64(i>>63)
		w.Varint(zz)
	})
}

// EncodeBool encodes a bool_value field.
func EncodeBool(b bool) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueBoolField, format.WireVarint)
		v := uint64(0)
		if b {
			v = 1
		}
		w.Varint(v)
	})
}

// EncodeMap encodes a map_value field from a flat (key_index, value_index)
// pair stream, as produced by a LayerBuilder interning each entry's key and
// value first.
func EncodeMap(pairs []uint32) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueMapField, format.WireBytes)
		w.WriteBytes(wire.AppendPackedUint32(pairs))
	})
}

// EncodeList encodes a list_value field from a value-index stream.
func EncodeList(indices []uint32) format.DataView {
	return encode(func(w *wire.Writer) {
		w.Tag(format.ValueListField, format.WireBytes)
		w.WriteBytes(wire.AppendPackedUint32(indices))
	})
}
