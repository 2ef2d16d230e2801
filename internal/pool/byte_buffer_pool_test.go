package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferGrowAndWrite(t *testing.T) {
	require := require.New(t)

	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("hello"))
	require.Equal("hello", string(bb.Bytes()))
	require.Equal(5, bb.Len())

	bb.Reset()
	require.Equal(0, bb.Len())
	require.GreaterOrEqual(bb.Cap(), 4)
}

func TestByteBufferTruncate(t *testing.T) {
	require := require.New(t)

	bb := NewByteBuffer(0)
	bb.MustWrite([]byte("abcdef"))
	bb.Truncate(3)
	require.Equal("abc", string(bb.Bytes()))

	require.Panics(func() { bb.Truncate(100) })
	require.Panics(func() { bb.Truncate(-1) })
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	require := require.New(t)

	p := NewByteBufferPool(8, 16)
	bb := p.Get()
	bb.MustWrite(make([]byte, 32))
	p.Put(bb) // exceeds maxThreshold, discarded rather than retained

	fresh := p.Get()
	require.Equal(0, fresh.Len())
}

func TestFeatureAndTileBufferPools(t *testing.T) {
	require := require.New(t)

	fb := GetFeatureBuffer()
	fb.MustWrite([]byte("feature"))
	require.Equal("feature", string(fb.Bytes()))
	PutFeatureBuffer(fb)

	tb := GetTileBuffer()
	tb.MustWrite([]byte("tile"))
	require.Equal("tile", string(tb.Bytes()))
	PutTileBuffer(tb)
}
