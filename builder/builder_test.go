package builder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/geom"
	"github.com/geocodec/mvt/layer"
	"github.com/geocodec/mvt/value"
	"github.com/geocodec/mvt/wire"
)

// firstLayer decodes a serialized Tile message and returns its first Layer,
// standing in for mvt.NewTileReader (not importable here without an import
// cycle back into this package).
func firstLayer(t *testing.T, tileData []byte) *layer.Reader {
	t.Helper()

	r := wire.NewReader(tileData)
	field, _, err := r.Tag()
	require.NoError(t, err)
	require.Equal(t, format.TileLayersField, field)
	layerBytes, err := r.Bytes()
	require.NoError(t, err)

	l, err := layer.New(layerBytes)
	require.NoError(t, err)

	return l
}

func TestBuildAndDecodePointFeature(t *testing.T) {
	require := require.New(t)

	tb := NewTileBuilder()
	lb := tb.NewLayer("poi")

	fb := lb.NewPointFeature()
	fb.SetID(42)
	fb.AddPoints([]geom.Point{{X: 25, Y: 17}})
	fb.AddStringProperty("kind", "restaurant")
	fb.Commit()

	data := tb.Serialize()

	r := firstLayer(t, data)
	require.Equal("poi", r.Name())
	require.Equal(1, r.NumFeatures())

	f, err := r.NextFeature(0)
	require.NoError(err)
	require.Equal(uint64(42), f.ID())
	require.Equal(format.GeomPoint, f.GeometryType())

	var h pointDumpHandler
	err = geom.Decode(f.Geometry(), nil, format.GeomPoint, 2, &h)
	require.NoError(err)
	require.Equal([]geom.Point{{X: 25, Y: 17}}, h.points)

	key, vi, err := f.Property(0)
	require.NoError(err)
	require.Equal("kind", key)
	encoded, ok := r.ValueTable().Value(vi)
	require.True(ok)
	str, err := value.New(encoded, r.KeyTable(), r.ValueTable()).StringValue()
	require.NoError(err)
	require.Equal("restaurant", str)
}

type pointDumpHandler struct{ points []geom.Point }

func (h *pointDumpHandler) PointsBegin(int)          {}
func (h *pointDumpHandler) PointsPoint(p geom.Point) { h.points = append(h.points, p) }
func (h *pointDumpHandler) PointsEnd()               {}

func TestCommitWithoutGeometryPanics(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPointFeature()
	require.Panics(func() { fb.Commit() })
}

func TestRollbackAfterCommitPanics(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPointFeature()
	fb.AddPoints([]geom.Point{{X: 1, Y: 1}})
	fb.Commit()

	require.Panics(func() { fb.Rollback() })
}

func TestDoubleCommitIsIdempotent(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPointFeature()
	fb.AddPoints([]geom.Point{{X: 1, Y: 1}})
	fb.Commit()

	require.NotPanics(func() { fb.Commit() })
	require.Equal(1, lb.featureCnt)
}

func TestRollbackDiscardsFeature(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPointFeature()
	fb.AddPoints([]geom.Point{{X: 1, Y: 1}})
	fb.Rollback()

	require.Equal(0, lb.featureCnt)
}

func TestAddPropertyBeforeGeometryPanics(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPointFeature()

	require.Panics(func() { fb.AddStringProperty("k", "v") })
}

func TestRingMustCloseOnBuild(t *testing.T) {
	require := require.New(t)

	lb := NewLayerBuilder("l")
	fb := lb.NewPolygonFeature()

	require.Panics(func() {
		fb.AddRing([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}})
	})
}

func TestNewGeometryFeatureRoundTrip(t *testing.T) {
	require := require.New(t)

	enc := geom.NewEncoder(2)
	require.NoError(enc.Point([]geom.Point{{X: 7, Y: 11}}))
	geometry := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	lb := NewLayerBuilder("poi")
	fb := lb.NewGeometryFeature(format.GeomPoint, geometry, nil)
	fb.SetID(9)
	fb.AddStringProperty("kind", "cafe")
	fb.Commit()

	tb := NewTileBuilder()
	tb.layers = append(tb.layers, tileLayer{built: lb})
	data := tb.Serialize()

	r := firstLayer(t, data)
	f, err := r.NextFeature(0)
	require.NoError(err)
	require.Equal(uint64(9), f.ID())

	var h pointDumpHandler
	err = geom.Decode(f.Geometry(), nil, format.GeomPoint, 2, &h)
	require.NoError(err)
	require.Equal([]geom.Point{{X: 7, Y: 11}}, h.points)
}

func TestNewGeometryFeatureRejectsSubsequentGeometryCalls(t *testing.T) {
	require := require.New(t)

	enc := geom.NewEncoder(2)
	require.NoError(enc.Point([]geom.Point{{X: 0, Y: 0}}))
	geometry := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	lb := NewLayerBuilder("poi")
	fb := lb.NewGeometryFeature(format.GeomPoint, geometry, nil)

	require.Panics(func() { fb.AddPoints([]geom.Point{{X: 1, Y: 1}}) })
}

func TestAddExistingLayerRoundTripsBytesExactly(t *testing.T) {
	require := require.New(t)

	origTB := NewTileBuilder()
	for _, name := range []string{"roads", "water"} {
		lb := origTB.NewLayer(name)
		fb := lb.NewPointFeature()
		fb.SetID(1)
		fb.AddPoints([]geom.Point{{X: 3, Y: 4}})
		fb.AddStringProperty("kind", name)
		fb.Commit()
	}
	orig := origTB.Serialize()

	r := wire.NewReader(orig)
	cloneTB := NewTileBuilder()
	for !r.Done() {
		field, _, err := r.Tag()
		require.NoError(err)
		require.Equal(format.TileLayersField, field)

		layerBytes, err := r.Bytes()
		require.NoError(err)
		cloneTB.AddExistingLayer(layerBytes)
	}

	require.True(bytes.Equal(orig, cloneTB.Serialize()))
}

func TestCloneFromExistingLayerPreservesHeader(t *testing.T) {
	require := require.New(t)

	origTB := NewTileBuilder()
	origLB := origTB.NewLayer("place_label")
	origLB.SetVersion(2).SetExtent(4096)
	origFB := origLB.NewPointFeature()
	origFB.SetID(1)
	origFB.AddPoints([]geom.Point{{X: 5, Y: 5}})
	origFB.Commit()
	origData := origTB.Serialize()

	origReader := firstLayer(t, origData)

	cloneTB := NewTileBuilder()
	cloneLB := cloneTB.NewLayerFromExisting(origReader)
	cloneFB := cloneLB.NewPointFeature()
	cloneFB.SetID(42)
	cloneFB.AddPoints([]geom.Point{{X: 9, Y: 9}})
	cloneFB.Commit()
	cloneData := cloneTB.Serialize()

	clonedReader := firstLayer(t, cloneData)
	require.Equal("place_label", clonedReader.Name())
	require.Equal(uint32(2), clonedReader.Version())
	require.Equal(uint32(4096), clonedReader.Extent())
	require.Equal(1, clonedReader.NumFeatures())

	f, err := clonedReader.NextFeature(0)
	require.NoError(err)
	require.Equal(uint64(42), f.ID())
}
