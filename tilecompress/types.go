package tilecompress

// CompressionType identifies an algorithm usable to compress a fully
// serialized tile buffer before it is persisted or transmitted. The
// compressed buffer does not record it; a single byte of this type, stored
// by the caller alongside the buffer, is all GetCodec needs to resolve the
// matching Codec to pass to ReadCompressedTile.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone performs no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses the S2 (Snappy-compatible) format.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
