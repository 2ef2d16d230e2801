//go:build cgozstd

package tilecompress

import "github.com/valyala/gozstd"

// Compress compresses data using cgo-accelerated zstd, for environments
// where cgo is available and raw throughput matters more than a pure-Go
// build.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses cgo-zstd-compressed data.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
