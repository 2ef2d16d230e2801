package builder

import (
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/internal/options"
	"github.com/geocodec/mvt/layer"
	"github.com/geocodec/mvt/table"
	"github.com/geocodec/mvt/wire"
)

// LayerBuilderOption configures a LayerBuilder at construction time, as an
// alternative to the fluent Set* setters for callers assembling options
// from a slice (e.g. propagated through a higher-level API).
type LayerBuilderOption = options.Option[*LayerBuilder]

// WithVersion overrides the default layer version (1).
func WithVersion(v uint32) LayerBuilderOption {
	return options.NoError(func(lb *LayerBuilder) { lb.version = v })
}

// WithExtent overrides the default extent (4096).
func WithExtent(e uint32) LayerBuilderOption {
	return options.NoError(func(lb *LayerBuilder) { lb.extent = e })
}

// WithDimensions overrides the default dimensions (2).
func WithDimensions(d uint32) LayerBuilderOption {
	return options.NoError(func(lb *LayerBuilder) { lb.dimensions = d })
}

// LayerBuilder owns a new layer's name/version/extent/dimensions, its key
// and value interning tables, and an append-only region of already-encoded
// feature messages.
type LayerBuilder struct {
	name       string
	version    uint32
	extent     uint32
	dimensions uint32
	keys       *table.KeyTable
	vals       *table.ValueTable
	features   *wire.Writer
	featureCnt int
}

// NewLayerBuilder creates an empty LayerBuilder with the MVT defaults
// (version 1, extent 4096, dimensions 2), optionally overridden by opts.
func NewLayerBuilder(name string, opts ...LayerBuilderOption) *LayerBuilder {
	lb := &LayerBuilder{
		name:       name,
		version:    1,
		extent:     4096,
		dimensions: 2,
		keys:       table.NewKeyTable(),
		vals:       table.NewValueTable(),
		features:   wire.NewWriter(),
	}
	_ = options.Apply(lb, opts...)

	return lb
}

// NewLayerBuilderFromExisting creates a LayerBuilder seeded from an
// existing decoded layer's name, version, extent, dimensions, and key/value
// vocabulary. Existing features are not copied; use
// TileBuilder.AddExistingLayer to pass an existing layer through verbatim
// instead.
func NewLayerBuilderFromExisting(r *layer.Reader) *LayerBuilder {
	lb := &LayerBuilder{
		name:       r.Name(),
		version:    r.Version(),
		extent:     r.Extent(),
		dimensions: r.Dimensions(),
		keys:       table.NewKeyTable(),
		vals:       table.NewValueTable(),
		features:   wire.NewWriter(),
	}
	for _, k := range r.KeyTable().All() {
		lb.keys.Append(k)
	}
	for _, v := range r.ValueTable().All() {
		lb.vals.Append(v)
	}

	return lb
}

// SetVersion overrides the default layer version (must be one of {1, 2, 3}
// to serialize a valid tile; not validated here since an in-progress
// builder may legitimately hold an intermediate value).
func (lb *LayerBuilder) SetVersion(v uint32) *LayerBuilder { lb.version = v; return lb }

// SetExtent overrides the default extent (4096).
func (lb *LayerBuilder) SetExtent(e uint32) *LayerBuilder { lb.extent = e; return lb }

// SetDimensions overrides the default dimensions (2). Use 3 to build 3D
// geometry.
func (lb *LayerBuilder) SetDimensions(d uint32) *LayerBuilder { lb.dimensions = d; return lb }

// Name returns the layer's name.
func (lb *LayerBuilder) Name() string { return lb.name }

// KeyTable returns the layer's key interning table.
func (lb *LayerBuilder) KeyTable() *table.KeyTable { return lb.keys }

// ValueTable returns the layer's value interning table.
func (lb *LayerBuilder) ValueTable() *table.ValueTable { return lb.vals }

// NewPointFeature starts a new POINT feature builder.
func (lb *LayerBuilder) NewPointFeature() *FeatureBuilder {
	return newFeatureBuilder(lb, format.GeomPoint)
}

// NewLineStringFeature starts a new LINESTRING feature builder.
func (lb *LayerBuilder) NewLineStringFeature() *FeatureBuilder {
	return newFeatureBuilder(lb, format.GeomLineString)
}

// NewPolygonFeature starts a new POLYGON feature builder.
func (lb *LayerBuilder) NewPolygonFeature() *FeatureBuilder {
	return newFeatureBuilder(lb, format.GeomPolygon)
}

// NewSplineFeature starts a new SPLINE feature builder.
func (lb *LayerBuilder) NewSplineFeature() *FeatureBuilder {
	return newFeatureBuilder(lb, format.GeomSpline)
}

// NewGeometryFeature starts a feature builder from an already-encoded
// geometry command stream (and, for SPLINE, knot stream). Because its
// geometry is supplied atomically, it may accept properties immediately.
func (lb *LayerBuilder) NewGeometryFeature(geomType format.GeomType, geometry, knots []byte) *FeatureBuilder {
	fb := newFeatureBuilder(lb, geomType)
	fb.enc.Release()
	fb.enc = nil
	fb.geometryBytes = geometry
	fb.knotsBytes = knots
	fb.state = stateGeometry

	return fb
}

// internProperty interns key and an already-encoded value (with dup check)
// and returns their table indices.
func (lb *LayerBuilder) internProperty(key string, encoded format.DataView) (format.IndexValue, format.IndexValue) {
	ki := lb.keys.Intern(key)
	vi := lb.vals.Intern(encoded)

	return ki, vi
}

// serialize assembles this layer's full Layer message bytes. The caller
// owns the returned slice.
func (lb *LayerBuilder) serialize() []byte {
	w := wire.NewWriter()
	defer w.Release()

	w.Tag(format.LayerNameField, format.WireBytes)
	w.WriteString(lb.name)

	for _, k := range lb.keys.All() {
		w.Tag(format.LayerKeysField, format.WireBytes)
		w.WriteString(k)
	}
	for _, v := range lb.vals.All() {
		w.Tag(format.LayerValuesField, format.WireBytes)
		w.WriteBytes(v)
	}

	w.RawBytes(lb.features.Bytes())

	w.Tag(format.LayerExtentField, format.WireVarint)
	w.Varint(uint64(lb.extent))
	w.Tag(format.LayerDimensionsField, format.WireVarint)
	w.Varint(uint64(lb.dimensions))
	w.Tag(format.LayerVersionField, format.WireVarint)
	w.Varint(uint64(lb.version))

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}
