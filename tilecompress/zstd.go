package tilecompress

// ZstdCodec compresses whole tile buffers with Zstandard, favoring
// compression ratio over speed. Intended for cold storage or network
// transmission of many tiles rather than hot-path use.
//
// Its Compress/Decompress methods are implemented in zstd_pure.go
// (github.com/klauspost/compress/zstd, the default, pure-Go build) or
// zstd_cgo.go (github.com/valyala/gozstd, opt-in via the cgozstd build
// tag), matching the teacher's build-tag split for the same algorithm.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }
