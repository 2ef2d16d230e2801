package feature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
	"github.com/geocodec/mvt/value"
	"github.com/geocodec/mvt/wire"
)

func TestFeatureDecodeBasics(t *testing.T) {
	require := require.New(t)

	keys := table.NewKeyTable()
	vals := table.NewValueTable()
	ki := keys.Intern("name")
	vi := vals.Intern(value.EncodeString("x"))

	w := wire.NewWriter()
	defer w.Release()
	w.Tag(format.FeatureIDField, format.WireVarint)
	w.Varint(7)
	w.Tag(format.FeatureTagsField, format.WireBytes)
	w.WriteBytes(wire.AppendPackedUint32([]uint32{uint32(ki), uint32(vi)}))
	w.Tag(format.FeatureTypeField, format.WireVarint)
	w.Varint(uint64(format.GeomLineString))
	w.Tag(format.FeatureGeometryField, format.WireBytes)
	w.WriteBytes(wire.AppendPackedUint32([]uint32{9, 4, 4}))

	f, err := New(w.Bytes(), keys, vals)
	require.NoError(err)
	require.Equal(uint64(7), f.ID())
	require.True(f.HasID())
	require.Equal(format.GeomLineString, f.GeometryType())
	require.Equal(1, f.NumProperties())

	key, idx, err := f.Property(0)
	require.NoError(err)
	require.Equal("name", key)
	require.Equal(vi, idx)
}

func TestFeatureRejectsDuplicateTagsField(t *testing.T) {
	require := require.New(t)

	w := wire.NewWriter()
	defer w.Release()
	w.Tag(format.FeatureTagsField, format.WireBytes)
	w.WriteBytes(wire.AppendPackedUint32([]uint32{0, 0}))
	w.Tag(format.FeatureTagsField, format.WireBytes)
	w.WriteBytes(wire.AppendPackedUint32([]uint32{0, 0}))

	_, err := New(w.Bytes(), table.NewKeyTable(), table.NewValueTable())
	require.ErrorIs(err, errs.ErrMalformedWire)
}

func TestFeaturePropertyOutOfRange(t *testing.T) {
	require := require.New(t)

	w := wire.NewWriter()
	defer w.Release()
	w.Tag(format.FeatureTagsField, format.WireBytes)
	w.WriteBytes(wire.AppendPackedUint32([]uint32{5, 0}))

	f, err := New(w.Bytes(), table.NewKeyTable(), table.NewValueTable())
	require.NoError(err)

	_, _, err = f.Property(0)
	require.ErrorIs(err, errs.ErrOutOfRange)
}
