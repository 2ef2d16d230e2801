package tilecompress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/geocodec/mvt/wire"
)

// lz4CompressorPool pools lz4.Compressor instances; they keep internal
// match-finder state that benefits from reuse across tiles.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// maxDecompressedTileSize bounds the size Decompress will allocate for a
// single tile, regardless of what a (possibly adversarial) length prefix
// claims. Serialized tiles this large are already well outside any
// reasonable extent/feature-count combination.
const maxDecompressedTileSize = 64 * 1024 * 1024

// LZ4Codec compresses whole tile buffers with LZ4 block compression.
//
// The LZ4 block format (unlike S2 or zstd's framing) carries no record of
// the decompressed size, so Decompress needs to know how large a buffer to
// hand lz4.UncompressBlock. Rather than guess and retry into a
// progressively larger scratch buffer, Compress prefixes its output with
// the original length as a raw varint (see wire.Writer.Varint), and
// Decompress reads that prefix to allocate the exact buffer up front.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

// Compress compresses data using a pooled lz4.Compressor, prefixing the
// result with data's length.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	block := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, block)
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	defer w.Release()
	w.Varint(uint64(len(data)))

	out := make([]byte, 0, w.Len()+n)
	out = append(out, w.Bytes()...)
	out = append(out, block[:n]...)

	return out, nil
}

// Decompress reads the length prefix Compress wrote, allocates an
// exactly-sized buffer, and decompresses the remaining LZ4 block into it.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := wire.NewReader(data)
	size, err := r.Varint()
	if err != nil {
		return nil, fmt.Errorf("tilecompress: lz4 length prefix: %w", err)
	}
	if size > maxDecompressedTileSize {
		return nil, fmt.Errorf("tilecompress: lz4 decompressed size %d exceeds %d byte limit", size, maxDecompressedTileSize)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[r.Pos():], buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}
