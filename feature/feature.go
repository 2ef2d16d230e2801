// Package feature implements FeatureReader (§4.4): per-feature id,
// geometry handle, and property stream, resolved against an owning
// layer's key/value tables.
package feature

import (
	"fmt"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
	"github.com/geocodec/mvt/wire"
)

// Reader exposes a decoded Feature message. It borrows data and the owning
// layer's tables; it is valid only as long as both remain alive.
type Reader struct {
	id       uint64
	hasID    bool
	geomType format.GeomType
	tags     []uint32
	geometry format.DataView
	knots    format.DataView
	keys     *table.KeyTable
	vals     *table.ValueTable
}

// New decodes a Feature message's id, type, tags, geometry, and knots
// fields against the owning layer's key/value tables.
func New(data format.DataView, keys *table.KeyTable, vals *table.ValueTable) (*Reader, error) {
	f := &Reader{keys: keys, vals: vals}

	haveTags, haveGeometry := false, false
	r := wire.NewReader(data)
	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch field {
		case format.FeatureIDField:
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			f.id = v
			f.hasID = true
		case format.FeatureTagsField:
			if haveTags {
				return nil, fmt.Errorf("%w: feature carries multiple tags fields", errs.ErrMalformedWire)
			}
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			tags, err := wire.PackedUint32(b)
			if err != nil {
				return nil, err
			}
			if len(tags)%2 != 0 {
				return nil, fmt.Errorf("%w: feature tags stream has odd length", errs.ErrMalformedWire)
			}
			f.tags = tags
			haveTags = true
		case format.FeatureTypeField:
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			f.geomType = format.GeomType(v) //nolint:gosec
		case format.FeatureGeometryField:
			if haveGeometry {
				return nil, fmt.Errorf("%w: feature carries multiple geometry fields", errs.ErrMalformedWire)
			}
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			f.geometry = b
			haveGeometry = true
		case format.FeatureKnotsField:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			f.knots = b
		default:
			if err := r.SkipValue(wt); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ID returns the feature's id, or 0 if absent.
func (f *Reader) ID() uint64 { return f.id }

// HasID reports whether the feature carried an explicit id field.
func (f *Reader) HasID() bool { return f.hasID }

// GeometryType returns the feature's declared geometry kind.
func (f *Reader) GeometryType() format.GeomType { return f.geomType }

// Geometry returns the raw packed command stream, for use with
// geom.Decode.
func (f *Reader) Geometry() format.DataView { return f.geometry }

// Knots returns the raw packed knot stream (SPLINE features only); nil for
// other geometry types.
func (f *Reader) Knots() format.DataView { return f.knots }

// NumProperties returns the number of (key, value) tag pairs.
func (f *Reader) NumProperties() int { return len(f.tags) / 2 }

// Property resolves the i-th (key, value) pair against the owning layer's
// tables. It fails with ErrOutOfRange if either index is out of bounds.
func (f *Reader) Property(i int) (string, format.IndexValue, error) {
	if i < 0 || i >= f.NumProperties() {
		return "", 0, fmt.Errorf("%w: property index %d", errs.ErrOutOfRange, i)
	}

	ki := format.IndexValue(f.tags[2*i])
	vi := format.IndexValue(f.tags[2*i+1])

	key, ok := f.keys.Key(ki)
	if !ok {
		return "", 0, fmt.Errorf("%w: key index %d", errs.ErrOutOfRange, ki)
	}
	if _, ok := f.vals.Value(vi); !ok {
		return "", 0, fmt.Errorf("%w: value index %d", errs.ErrOutOfRange, vi)
	}

	return key, vi, nil
}

// ValueTable returns the owning layer's value table, so callers can wrap
// the index returned by Property in a value.Value.
func (f *Reader) ValueTable() *table.ValueTable { return f.vals }

// KeyTable returns the owning layer's key table.
func (f *Reader) KeyTable() *table.KeyTable { return f.keys }

// ForEachProperty calls fn for each (key, value-index) pair in wire order,
// stopping early (without error) if fn returns false.
func (f *Reader) ForEachProperty(fn func(key string, valueIdx format.IndexValue) bool) error {
	for i := 0; i < f.NumProperties(); i++ {
		key, vi, err := f.Property(i)
		if err != nil {
			return err
		}
		if !fn(key, vi) {
			return nil
		}
	}

	return nil
}
