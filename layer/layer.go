// Package layer implements LayerReader (§4.3): streaming iteration of a
// decoded Layer message's features plus its key/value interning tables.
package layer

import (
	"fmt"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/feature"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
	"github.com/geocodec/mvt/wire"
)

// Reader exposes a decoded Layer's metadata, key/value tables, and feature
// stream. It borrows data: it is only valid while the buffer data was
// built from remains alive and unmodified.
type Reader struct {
	data       format.DataView
	name       string
	version    uint32
	extent     uint32
	dimensions uint32
	keys       *table.KeyTable
	values     *table.ValueTable
	features   []format.DataView
}

// New decodes a Layer message's fields, tables, and feature offsets. It
// fails at construction (rather than lazily) per §4.3: missing name
// (ErrMalformedWire), unsupported version (ErrUnsupportedVersion),
// malformed key/value entries (ErrMalformedWire).
func New(data format.DataView) (*Reader, error) {
	l := &Reader{
		data:       data,
		version:    1,
		extent:     4096,
		dimensions: 2,
		keys:       table.NewKeyTable(),
		values:     table.NewValueTable(),
	}

	haveName := false
	r := wire.NewReader(data)
	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch field {
		case format.LayerNameField:
			if wt != format.WireBytes {
				return nil, fmt.Errorf("%w: layer name has wire type %d", errs.ErrMalformedWire, wt)
			}
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			l.name = string(b)
			haveName = true
		case format.LayerFeaturesField:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			l.features = append(l.features, b)
		case format.LayerKeysField:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			l.keys.Append(string(b))
		case format.LayerValuesField:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			l.values.Append(b)
		case format.LayerExtentField:
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			l.extent = uint32(v) //nolint:gosec
		case format.LayerDimensionsField:
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			l.dimensions = uint32(v) //nolint:gosec
		case format.LayerVersionField:
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			l.version = uint32(v) //nolint:gosec
		default:
			if err := r.SkipValue(wt); err != nil {
				return nil, err
			}
		}
	}

	if !haveName || l.name == "" {
		return nil, fmt.Errorf("%w: layer missing required name field", errs.ErrMalformedWire)
	}
	if l.version < 1 || l.version > 3 {
		return nil, fmt.Errorf("%w: layer version %d", errs.ErrUnsupportedVersion, l.version)
	}
	if l.dimensions != 2 && l.dimensions != 3 {
		return nil, fmt.Errorf("%w: layer dimensions %d", errs.ErrUnsupportedVersion, l.dimensions)
	}

	return l, nil
}

// Name returns the layer's name.
func (l *Reader) Name() string { return l.name }

// Version returns the layer's declared version, one of {1, 2, 3}.
func (l *Reader) Version() uint32 { return l.version }

// Extent returns the layer's coordinate extent (default 4096).
func (l *Reader) Extent() uint32 { return l.extent }

// Dimensions returns the layer's coordinate dimensionality, 2 or 3.
func (l *Reader) Dimensions() uint32 { return l.dimensions }

// NumFeatures returns the number of features in wire order.
func (l *Reader) NumFeatures() int { return len(l.features) }

// KeyTable returns the layer's interned key table.
func (l *Reader) KeyTable() *table.KeyTable { return l.keys }

// ValueTable returns the layer's interned value table.
func (l *Reader) ValueTable() *table.ValueTable { return l.values }

// RawData returns the layer's encoded bytes, for use as an "existing
// layer" DataView copied verbatim by builder.TileBuilder.AddExistingLayer.
func (l *Reader) RawData() format.DataView { return l.data }

// NextFeature decodes the feature at index i, resolved against this
// layer's key/value tables. Feature iteration is forward-only by
// convention but is restartable: any index may be requested at any time
// since the layer keeps every feature's raw bytes.
func (l *Reader) NextFeature(i int) (*feature.Reader, error) {
	if i < 0 || i >= len(l.features) {
		return nil, fmt.Errorf("%w: feature index %d", errs.ErrOutOfRange, i)
	}

	return feature.New(l.features[i], l.keys, l.values)
}

// GetFeatureByID returns the first feature whose id field equals id. It
// reports false if no such feature exists.
func (l *Reader) GetFeatureByID(id uint64) (*feature.Reader, bool, error) {
	for i := range l.features {
		f, err := feature.New(l.features[i], l.keys, l.values)
		if err != nil {
			return nil, false, err
		}
		if f.HasID() && f.ID() == id {
			return f, true, nil
		}
	}

	return nil, false, nil
}

// ForEachFeature decodes and calls fn for each feature in wire order,
// stopping early (without error) if fn returns false.
func (l *Reader) ForEachFeature(fn func(f *feature.Reader) bool) error {
	for i := range l.features {
		f, err := feature.New(l.features[i], l.keys, l.values)
		if err != nil {
			return err
		}
		if !fn(f) {
			return nil
		}
	}

	return nil
}
