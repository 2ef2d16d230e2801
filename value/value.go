// Package value implements PropertyValue, the polymorphic tagged-union type
// carried by layer value tables and nested map/list values (§4.6), plus the
// encoders builders use to produce its wire form.
package value

import (
	"fmt"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
	"github.com/geocodec/mvt/wire"
)

// Value lazily parses an encoded PropertyValue message. It holds only the
// raw bytes and the tables needed to resolve nested map/list indices; the
// sub-field payload is decoded by each accessor call, not at construction,
// and nothing decoded is cached.
type Value struct {
	data format.DataView
	keys *table.KeyTable
	vals *table.ValueTable
}

// New wraps an encoded PropertyValue message. keys and vals resolve indices
// for a nested Map or List value; both may be nil for a scalar-only value
// that the caller knows will never be asked to resolve nested references.
func New(data format.DataView, keys *table.KeyTable, vals *table.ValueTable) Value {
	return Value{data: data, keys: keys, vals: vals}
}

// Kind reports which of the nine PropertyValue sub-fields is present. It
// returns ValueUnknown and a non-nil error if the encoded bytes carry no
// recognized field, more than one field, or a tag/wire-type mismatch.
func (v Value) Kind() (format.ValueKind, error) {
	kind, _, _, err := v.scan()
	return kind, err
}

// scan walks the encoded message once, returning the single recognized
// field's kind, its raw encoded value bytes following the tag (including
// the length prefix for length-delimited kinds), and the field number
// itself.
func (v Value) scan() (format.ValueKind, format.DataView, int, error) {
	r := wire.NewReader(v.data)
	found := false
	var kind format.ValueKind
	var payload format.DataView
	var field int

	for !r.Done() {
		f, wt, err := r.Tag()
		if err != nil {
			return format.ValueUnknown, nil, 0, err
		}
		wantWT, known := format.ValueFieldWireType(f)
		if !known {
			if err := r.SkipValue(wt); err != nil {
				return format.ValueUnknown, nil, 0, err
			}
			continue
		}
		if wt != wantWT {
			return format.ValueUnknown, nil, 0, fmt.Errorf("%w: value field %d wire type %d, want %d", errs.ErrFormat, f, wt, wantWT)
		}
		if found {
			return format.ValueUnknown, nil, 0, fmt.Errorf("%w: value message carries more than one field", errs.ErrMalformedWire)
		}
		found = true
		field = f
		kind = format.ValueFieldKind(f)

		start := r.Pos()
		if err := r.SkipValue(wt); err != nil {
			return format.ValueUnknown, nil, 0, err
		}
		payload = v.data[start:r.Pos()]
	}

	if !found {
		return format.ValueUnknown, nil, 0, fmt.Errorf("%w: value message carries no recognized field", errs.ErrMalformedWire)
	}

	return kind, payload, field, nil
}

// StringValue returns the string payload, or ErrType if the value is not a
// string.
func (v Value) StringValue() (string, error) {
	payload, err := v.scalarPayload(format.ValueString)
	if err != nil {
		return "", err
	}
	r := wire.NewReader(payload)
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// FloatValue returns the float32 payload, or ErrType if the value is not a
// float.
func (v Value) FloatValue() (float32, error) {
	payload, err := v.scalarPayload(format.ValueFloat)
	if err != nil {
		return 0, err
	}

	return decodeFixed32Float(payload)
}

// DoubleValue returns the float64 payload, or ErrType if the value is not a
// double.
func (v Value) DoubleValue() (float64, error) {
	payload, err := v.scalarPayload(format.ValueDouble)
	if err != nil {
		return 0, err
	}

	return decodeFixed64Double(payload)
}

// IntValue returns the int64 payload of a plain (non-zigzag) varint int
// field, or ErrType if the value is not an int.
func (v Value) IntValue() (int64, error) {
	payload, err := v.scalarPayload(format.ValueInt)
	if err != nil {
		return 0, err
	}
	u, err := decodeVarint(payload)
	if err != nil {
		return 0, err
	}

	return int64(u), nil //nolint:gosec
}

// UintValue returns the uint64 payload, or ErrType if the value is not a
// uint.
func (v Value) UintValue() (uint64, error) {
	payload, err := v.scalarPayload(format.ValueUint)
	if err != nil {
		return 0, err
	}

	return decodeVarint(payload)
}

// SintValue returns the int64 payload of a zigzag-encoded sint field, or
// ErrType if the value is not a sint.
func (v Value) SintValue() (int64, error) {
	payload, err := v.scalarPayload(format.ValueSint)
	if err != nil {
		return 0, err
	}
	u, err := decodeVarint(payload)
	if err != nil {
		return 0, err
	}

	return int64(u>>1) ^ -int64(u&1), nil
}

// BoolValue returns the bool payload, or ErrType if the value is not a bool.
func (v Value) BoolValue() (bool, error) {
	payload, err := v.scalarPayload(format.ValueBool)
	if err != nil {
		return false, err
	}
	u, err := decodeVarint(payload)
	if err != nil {
		return false, err
	}

	return u != 0, nil
}

// MapValue returns the nested PropertyMap, or ErrType if the value is not a
// map.
func (v Value) MapValue() (Map, error) {
	payload, err := v.scalarPayload(format.ValueMap)
	if err != nil {
		return Map{}, err
	}
	content, err := wire.NewReader(payload).Bytes()
	if err != nil {
		return Map{}, err
	}
	idx, err := wire.PackedUint32(content)
	if err != nil {
		return Map{}, err
	}
	if len(idx)%2 != 0 {
		return Map{}, fmt.Errorf("%w: map index stream has odd length", errs.ErrMalformedWire)
	}

	return Map{keys: v.keys, vals: v.vals, idx: idx}, nil
}

// ListValue returns the nested PropertyList, or ErrType if the value is not
// a list.
func (v Value) ListValue() (List, error) {
	payload, err := v.scalarPayload(format.ValueList)
	if err != nil {
		return List{}, err
	}
	content, err := wire.NewReader(payload).Bytes()
	if err != nil {
		return List{}, err
	}
	idx, err := wire.PackedUint32(content)
	if err != nil {
		return List{}, err
	}

	return List{vals: v.vals, idx: idx}, nil
}

// scalarPayload scans the value and returns its raw field bytes if its kind
// matches want, or ErrType otherwise.
func (v Value) scalarPayload(want format.ValueKind) (format.DataView, error) {
	kind, payload, _, err := v.scan()
	if err != nil {
		return nil, err
	}
	if kind != want {
		return nil, fmt.Errorf("%w: value is %s, not %s", errs.ErrType, kind, want)
	}

	return payload, nil
}

func decodeVarint(payload format.DataView) (uint64, error) {
	r := wire.NewReader(payload)
	return r.Varint()
}

func decodeFixed32Float(payload format.DataView) (float32, error) {
	r := wire.NewReader(payload)
	return r.Float()
}

func decodeFixed64Double(payload format.DataView) (float64, error) {
	r := wire.NewReader(payload)
	return r.Double()
}

// Visit dispatches on v's kind and invokes the matching method of vis
// exactly once, returning whatever it returns. Every branch must produce
// the same caller-chosen type T, mirroring apply_visitor's single dispatch
// with a uniform return type.
func Visit[T any](v Value, vis Visitor[T]) (T, error) {
	var zero T
	kind, err := v.Kind()
	if err != nil {
		return zero, err
	}

	switch kind {
	case format.ValueString:
		s, err := v.StringValue()
		if err != nil {
			return zero, err
		}
		return vis.String(s), nil
	case format.ValueFloat:
		f, err := v.FloatValue()
		if err != nil {
			return zero, err
		}
		return vis.Float(f), nil
	case format.ValueDouble:
		d, err := v.DoubleValue()
		if err != nil {
			return zero, err
		}
		return vis.Double(d), nil
	case format.ValueInt:
		i, err := v.IntValue()
		if err != nil {
			return zero, err
		}
		return vis.Int(i), nil
	case format.ValueUint:
		u, err := v.UintValue()
		if err != nil {
			return zero, err
		}
		return vis.Uint(u), nil
	case format.ValueSint:
		s, err := v.SintValue()
		if err != nil {
			return zero, err
		}
		return vis.Sint(s), nil
	case format.ValueBool:
		b, err := v.BoolValue()
		if err != nil {
			return zero, err
		}
		return vis.Bool(b), nil
	case format.ValueMap:
		m, err := v.MapValue()
		if err != nil {
			return zero, err
		}
		return vis.Map(m), nil
	case format.ValueList:
		l, err := v.ListValue()
		if err != nil {
			return zero, err
		}
		return vis.List(l), nil
	default:
		return zero, fmt.Errorf("%w: unvisitable value kind %s", errs.ErrType, kind)
	}
}

// Visitor is the set of callbacks Visit dispatches a Value's payload to,
// one per ValueKind, each producing a caller-chosen result type T.
type Visitor[T any] interface {
	String(string) T
	Float(float32) T
	Double(float64) T
	Int(int64) T
	Uint(uint64) T
	Sint(int64) T
	Bool(bool) T
	Map(Map) T
	List(List) T
}
