package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
)

func TestVarintRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()

	values := []uint64{0, 1, 127, 128, 300, 1 << 40}
	for _, v := range values {
		w.Varint(v)
	}

	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.Varint()
		require.NoError(err)
		require.Equal(want, got)
	}
	require.True(r.Done())
}

func TestZigzag32RoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()

	values := []int32{0, 1, -1, 25, -25, 2147483647, -2147483648}
	for _, v := range values {
		w.Zigzag32(v)
	}

	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.Zigzag32()
		require.NoError(err)
		require.Equal(want, got)
	}
}

func TestTagRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()
	w.Tag(3, format.WireBytes)

	r := NewReader(w.Bytes())
	field, wt, err := r.Tag()
	require.NoError(err)
	require.Equal(3, field)
	require.Equal(format.WireBytes, wt)
}

func TestBytesTruncatedFails(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()
	w.Varint(10) // declares 10 bytes but none follow

	r := NewReader(w.Bytes())
	_, err := r.Bytes()
	require.ErrorIs(err, errs.ErrMalformedWire)
}

func TestVarintTruncatedFails(t *testing.T) {
	require := require.New(t)

	// A single byte with the continuation bit set, then nothing.
	r := NewReader(format.DataView{0x80})
	_, err := r.Varint()
	require.ErrorIs(err, errs.ErrMalformedWire)
}

func TestSkipValueHandlesAllWireTypes(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()
	w.Varint(42)
	w.Fixed64(1)
	w.WriteBytes([]byte("hi"))
	w.Fixed32(1)

	r := NewReader(w.Bytes())
	require.NoError(r.SkipValue(format.WireVarint))
	require.NoError(r.SkipValue(format.WireFixed64))
	require.NoError(r.SkipValue(format.WireBytes))
	require.NoError(r.SkipValue(format.WireFixed32))
	require.True(r.Done())
}

func TestFloatAndDoubleRoundTrip(t *testing.T) {
	require := require.New(t)

	w := NewWriter()
	defer w.Release()
	w.Float(3.5)
	w.Double(2.718281828)

	r := NewReader(w.Bytes())
	f, err := r.Float()
	require.NoError(err)
	require.InDelta(float32(3.5), f, 0.0001)

	d, err := r.Double()
	require.NoError(err)
	require.InDelta(2.718281828, d, 0.0000001)
}

func TestPackedUint32(t *testing.T) {
	require := require.New(t)

	inner := AppendPackedUint32([]uint32{9, 50, 34})
	out, err := PackedUint32(inner)
	require.NoError(err)
	require.Equal([]uint32{9, 50, 34}, out)
}

func TestPackedDouble(t *testing.T) {
	require := require.New(t)

	inner := AppendPackedDouble([]float64{0, 0.5, 1.0})
	out, err := PackedDouble(inner)
	require.NoError(err)
	require.Equal([]float64{0, 0.5, 1.0}, out)
}

func TestPackedDoubleRejectsMisalignedLength(t *testing.T) {
	require := require.New(t)

	_, err := PackedDouble([]byte{1, 2, 3})
	require.ErrorIs(err, errs.ErrMalformedWire)
}
