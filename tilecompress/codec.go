// Package tilecompress provides an optional whole-buffer compression layer
// for callers who persist or transmit serialized tiles. It never inspects
// tile semantics: the core MVT codec's own varint/zigzag encoding is the
// compression; this package only wraps an already-serialized buffer.
package tilecompress

import "fmt"

// Compressor compresses an opaque byte buffer.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a buffer produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// codecs holds one shared, stateless Codec value per CompressionType.
// Compressed tiles carry no record of which type produced them; a caller
// that stores the CompressionType out-of-band resolves it back to a Codec
// through this map via GetCodec. Every codec below is immutable
// and safe to share across goroutines, so there is exactly one resolution
// path rather than a factory plus a registry.
var codecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCodec(),
	CompressionZstd: NewZstdCodec(),
	CompressionS2:   NewS2Codec(),
	CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec resolves compressionType to its shared Codec.
func GetCodec(compressionType CompressionType) (Codec, error) {
	if codec, ok := codecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("tilecompress: unsupported compression type: %s", compressionType)
}
