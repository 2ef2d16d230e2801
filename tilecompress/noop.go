package tilecompress

// NoOpCodec bypasses compression entirely, for testing, debugging, and
// baseline measurements.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a codec that returns its input unchanged.
func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

// Compress returns data as-is.
func (NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data as-is.
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
