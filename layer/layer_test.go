package layer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/feature"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/value"
	"github.com/geocodec/mvt/wire"
)

func buildLayer(t *testing.T, name string, version uint32) []byte {
	t.Helper()

	w := wire.NewWriter()
	defer w.Release()

	w.Tag(format.LayerNameField, format.WireBytes)
	w.WriteString(name)

	w.Tag(format.LayerKeysField, format.WireBytes)
	w.WriteString("kind")

	w.Tag(format.LayerValuesField, format.WireBytes)
	w.WriteBytes(value.EncodeString("poi"))

	// one feature: id=42, tags=[0,0] (key 0 -> value 0), POINT geometry
	fw := wire.NewWriter()
	defer fw.Release()
	fw.Tag(format.FeatureIDField, format.WireVarint)
	fw.Varint(42)
	fw.Tag(format.FeatureTagsField, format.WireBytes)
	fw.WriteBytes(wire.AppendPackedUint32([]uint32{0, 0}))
	fw.Tag(format.FeatureTypeField, format.WireVarint)
	fw.Varint(uint64(format.GeomPoint))
	fw.Tag(format.FeatureGeometryField, format.WireBytes)
	fw.WriteBytes(wire.AppendPackedUint32([]uint32{9, 50, 34}))

	w.Tag(format.LayerFeaturesField, format.WireBytes)
	w.WriteBytes(fw.Bytes())

	w.Tag(format.LayerExtentField, format.WireVarint)
	w.Varint(4096)
	w.Tag(format.LayerVersionField, format.WireVarint)
	w.Varint(uint64(version))

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

func TestLayerDecodeAndIterate(t *testing.T) {
	require := require.New(t)

	data := buildLayer(t, "poi", 2)
	l, err := New(data)
	require.NoError(err)
	require.Equal("poi", l.Name())
	require.Equal(uint32(2), l.Version())
	require.Equal(uint32(4096), l.Extent())
	require.Equal(1, l.NumFeatures())

	f, err := l.NextFeature(0)
	require.NoError(err)
	require.True(f.HasID())
	require.Equal(uint64(42), f.ID())
	require.Equal(format.GeomPoint, f.GeometryType())
	require.Equal(1, f.NumProperties())

	key, vi, err := f.Property(0)
	require.NoError(err)
	require.Equal("kind", key)

	val, ok := l.ValueTable().Value(vi)
	require.True(ok)
	str, err := value.New(val, l.KeyTable(), l.ValueTable()).StringValue()
	require.NoError(err)
	require.Equal("poi", str)
}

func TestLayerRejectsMissingName(t *testing.T) {
	require := require.New(t)

	w := wire.NewWriter()
	defer w.Release()
	w.Tag(format.LayerExtentField, format.WireVarint)
	w.Varint(4096)

	_, err := New(w.Bytes())
	require.ErrorIs(err, errs.ErrMalformedWire)
}

func TestLayerRejectsUnsupportedVersion(t *testing.T) {
	require := require.New(t)

	data := buildLayer(t, "poi", 9)
	_, err := New(data)
	require.ErrorIs(err, errs.ErrUnsupportedVersion)
}

func TestGetFeatureByID(t *testing.T) {
	require := require.New(t)

	data := buildLayer(t, "poi", 2)
	l, err := New(data)
	require.NoError(err)

	f, ok, err := l.GetFeatureByID(42)
	require.NoError(err)
	require.True(ok)
	require.Equal(uint64(42), f.ID())

	_, ok, err = l.GetFeatureByID(99)
	require.NoError(err)
	require.False(ok)
}

func TestForEachFeatureEarlyStop(t *testing.T) {
	require := require.New(t)

	data := buildLayer(t, "poi", 2)
	l, err := New(data)
	require.NoError(err)

	count := 0
	err = l.ForEachFeature(func(f *feature.Reader) bool {
		count++
		return false
	})
	require.NoError(err)
	require.Equal(1, count)
}
