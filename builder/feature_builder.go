package builder

import (
	"fmt"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/geom"
	"github.com/geocodec/mvt/value"
	"github.com/geocodec/mvt/wire"
)

// FeatureBuilder assembles one Feature message. It enforces the state
// machine of §4.7: INIT -> GEOMETRY -> PROPERTIES -> {COMMITTED |
// ROLLED_BACK}. Calling a method out of order is a programmer error and
// panics with errs.ErrBuilderState, matching the panic-on-misuse
// convention internal/pool.ByteBuffer already uses for buffer violations.
type FeatureBuilder struct {
	layer    *LayerBuilder
	state    featureState
	geomKind format.GeomType

	hasID bool
	id    uint64

	enc           *geom.Encoder // nil once geometryBytes is supplied directly
	geometryBytes []byte
	knotsBytes    []byte

	tags []uint32
}

func newFeatureBuilder(lb *LayerBuilder, kind format.GeomType) *FeatureBuilder {
	if lb.dimensions != 2 && lb.dimensions != 3 {
		panic(fmt.Errorf("%w: layer dimensions %d", errs.ErrUnsupportedVersion, lb.dimensions))
	}

	return &FeatureBuilder{
		layer:    lb,
		state:    stateInit,
		geomKind: kind,
		enc:      geom.NewEncoder(int(lb.dimensions)), //nolint:gosec
	}
}

func (fb *FeatureBuilder) fail(msg string, args ...any) {
	panic(fmt.Errorf("%w: "+msg, append([]any{errs.ErrBuilderState}, args...)...))
}

// SetID sets the feature's id. Valid only before any geometry has been
// added, or, for a feature created by NewGeometryFeature, before any
// property has been added.
func (fb *FeatureBuilder) SetID(id uint64) *FeatureBuilder {
	if fb.state != stateInit && (fb.state != stateGeometry || fb.enc != nil) {
		fb.fail("SetID called in state %s, want INIT", fb.state)
	}
	fb.id = id
	fb.hasID = true

	return fb
}

func (fb *FeatureBuilder) requireGeometryPhase(kind format.GeomType, method string) {
	if fb.geomKind != kind {
		fb.fail("%s called on a %s feature builder", method, fb.geomKind)
	}
	if fb.state != stateInit && fb.state != stateGeometry {
		fb.fail("%s called in state %s, want INIT or GEOMETRY", method, fb.state)
	}
	if fb.enc == nil {
		fb.fail("%s called on a feature built from an existing geometry blob", method)
	}
}

// AddPoints emits the single MoveTo block for a POINT feature. Valid once.
func (fb *FeatureBuilder) AddPoints(points []geom.Point) *FeatureBuilder {
	fb.requireGeometryPhase(format.GeomPoint, "AddPoints")
	if fb.state == stateGeometry {
		fb.fail("AddPoints called more than once")
	}
	if err := fb.enc.Point(points); err != nil {
		panic(err)
	}
	fb.state = stateGeometry

	return fb
}

// AddLineString appends one LINESTRING strand. Repeatable.
func (fb *FeatureBuilder) AddLineString(points []geom.Point) *FeatureBuilder {
	fb.requireGeometryPhase(format.GeomLineString, "AddLineString")
	if err := fb.enc.LineString(points); err != nil {
		panic(err)
	}
	fb.state = stateGeometry

	return fb
}

// AddRing appends one POLYGON ring. points must be closed: points[0] ==
// points[len-1]. Repeatable.
func (fb *FeatureBuilder) AddRing(points []geom.Point) *FeatureBuilder {
	fb.requireGeometryPhase(format.GeomPolygon, "AddRing")
	if err := fb.enc.Ring(points); err != nil {
		panic(err)
	}
	fb.state = stateGeometry

	return fb
}

// AddControlPoints appends a SPLINE's control-point strand and sets its
// knot vector. A spline feature has exactly one control-point strand.
func (fb *FeatureBuilder) AddControlPoints(points []geom.Point, knots []float64) *FeatureBuilder {
	fb.requireGeometryPhase(format.GeomSpline, "AddControlPoints")
	if fb.state == stateGeometry {
		fb.fail("AddControlPoints called more than once")
	}
	if err := fb.enc.LineString(points); err != nil {
		panic(err)
	}
	fb.knotsBytes = geom.EncodeKnots(knots)
	fb.state = stateGeometry

	return fb
}

func (fb *FeatureBuilder) requirePropertyPhase() {
	if fb.state != stateGeometry && fb.state != stateProperties {
		fb.fail("property added in state %s, want GEOMETRY or PROPERTIES", fb.state)
	}
}

// AddProperty interns key and the already-encoded value (with dup check)
// and appends the pair to the feature's tag stream.
func (fb *FeatureBuilder) AddProperty(key string, encoded format.DataView) *FeatureBuilder {
	fb.requirePropertyPhase()
	ki, vi := fb.layer.internProperty(key, encoded)
	fb.tags = append(fb.tags, uint32(ki), uint32(vi))
	fb.state = stateProperties

	return fb
}

// AddPropertyIndexes appends a pair of pre-interned key/value indices
// directly, without any interning lookup.
func (fb *FeatureBuilder) AddPropertyIndexes(keyIdx, valIdx format.IndexValue) *FeatureBuilder {
	fb.requirePropertyPhase()
	fb.tags = append(fb.tags, uint32(keyIdx), uint32(valIdx))
	fb.state = stateProperties

	return fb
}

// AddStringProperty is a convenience wrapper around AddProperty for string
// values.
func (fb *FeatureBuilder) AddStringProperty(key, s string) *FeatureBuilder {
	return fb.AddProperty(key, value.EncodeString(s))
}

// AddDoubleProperty is a convenience wrapper around AddProperty for double
// values.
func (fb *FeatureBuilder) AddDoubleProperty(key string, v float64) *FeatureBuilder {
	return fb.AddProperty(key, value.EncodeDouble(v))
}

// AddBoolProperty is a convenience wrapper around AddProperty for bool
// values.
func (fb *FeatureBuilder) AddBoolProperty(key string, v bool) *FeatureBuilder {
	return fb.AddProperty(key, value.EncodeBool(v))
}

// Commit finalizes the feature and appends it to the owning layer.
// Committing without any geometry is a programmer error. Committing twice
// is idempotent.
func (fb *FeatureBuilder) Commit() {
	if fb.state == stateCommitted {
		return
	}
	if fb.state == stateRolledBack {
		fb.fail("Commit called after Rollback")
	}
	if fb.state == stateInit {
		fb.fail("Commit called with no geometry added")
	}

	geometry := fb.geometryBytes
	if fb.enc != nil {
		geometry = fb.enc.Bytes()
	}

	w := wire.NewWriter()
	defer w.Release()

	if fb.hasID {
		w.Tag(format.FeatureIDField, format.WireVarint)
		w.Varint(fb.id)
	}
	if len(fb.tags) > 0 {
		w.Tag(format.FeatureTagsField, format.WireBytes)
		w.WriteBytes(wire.AppendPackedUint32(fb.tags))
	}
	w.Tag(format.FeatureTypeField, format.WireVarint)
	w.Varint(uint64(fb.geomKind))
	w.Tag(format.FeatureGeometryField, format.WireBytes)
	w.WriteBytes(geometry)
	if len(fb.knotsBytes) > 0 {
		w.Tag(format.FeatureKnotsField, format.WireBytes)
		w.WriteBytes(fb.knotsBytes)
	}

	fb.layer.features.Tag(format.LayerFeaturesField, format.WireBytes)
	fb.layer.features.WriteBytes(w.Bytes())
	fb.layer.featureCnt++

	if fb.enc != nil {
		fb.enc.Release()
		fb.enc = nil
	}
	fb.state = stateCommitted
}

// Rollback discards the feature. The layer is left unchanged. Rollback
// after Commit is a programmer error.
func (fb *FeatureBuilder) Rollback() {
	if fb.state == stateRolledBack {
		return
	}
	if fb.state == stateCommitted {
		fb.fail("Rollback called after Commit")
	}
	if fb.enc != nil {
		fb.enc.Release()
		fb.enc = nil
	}
	fb.state = stateRolledBack
}
