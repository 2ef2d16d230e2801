package tilecompress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/wire"
)

func TestCodecsRoundTrip(t *testing.T) {
	byName := map[string]Codec{
		"noop": NewNoOpCodec(),
		"lz4":  NewLZ4Codec(),
		"s2":   NewS2Codec(),
		"zstd": NewZstdCodec(),
	}

	payload := []byte("a small serialized tile payload, repeated repeated repeated repeated")

	for name, codec := range byName {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			compressed, err := codec.Compress(payload)
			require.NoError(err)

			out, err := codec.Decompress(compressed)
			require.NoError(err)
			require.Equal(payload, out)
		})
	}
}

func TestGetCodecReturnsBuiltin(t *testing.T) {
	require := require.New(t)

	codec, err := GetCodec(CompressionZstd)
	require.NoError(err)
	require.NotNil(codec)
}

func TestGetCodecRejectsUnknownType(t *testing.T) {
	require := require.New(t)

	_, err := GetCodec(CompressionType(0xff))
	require.Error(err)
}

func TestLZ4DecompressRejectsOversizedLengthPrefix(t *testing.T) {
	require := require.New(t)

	w := wire.NewWriter()
	defer w.Release()
	w.Varint(maxDecompressedTileSize + 1)

	_, err := NewLZ4Codec().Decompress(w.Bytes())
	require.Error(err)
}
