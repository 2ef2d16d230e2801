// Package pool provides a pooled, growable byte buffer used by wire.Writer
// (and so by every geom encoder and builder that writes through it) to
// keep serialization append-only and allocation-light, the same way the
// teacher library pools its encoder buffers.
package pool

import "sync"

// Default and max-retained sizes for the buffer pools. TileBuffer backs
// the feature buffer pool that every wire.Writer draws from (small,
// reused per writer); TileSetBuffer backs the larger tile buffer pool
// served by GetTileBuffer.
const (
	TileBufferDefaultSize    = 1024 * 4    // 4KiB, sized for a single feature's geometry+tags
	TileBufferMaxThreshold   = 1024 * 64   // 64KiB
	TileSetBufferDefaultSize = 1024 * 64   // 64KiB, sized for a whole tile
	TileSetBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is a growable []byte wrapper with an amortized growth
// strategy tuned for append-only writers.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice. The slice is only valid until
// the next mutating call (Write, MustWrite, Reset, Grow).
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer but keeps its backing array for reuse.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the buffer's current capacity.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte, growing the buffer if necessary.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

// Truncate shrinks the buffer to length n, discarding everything after it.
// Panics if n is negative or greater than the current length.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("pool: Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation.
//
// Growth strategy: small buffers grow by a fixed default chunk to minimize
// reallocations early on; buffers already larger than 4x the default chunk
// grow by 25% of their current capacity, balancing memory use against
// reallocation cost for the rare very-large tile.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := TileBufferDefaultSize
	if cap(bb.B) > 4*TileBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// ByteBufferPool is a sync.Pool of ByteBuffers with an optional retained-size
// cap, so that one abnormally large tile does not permanently bloat the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded, rather than retained, once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse, discarding it instead if
// its capacity has grown past the pool's maxThreshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	tileBufferPool    = NewByteBufferPool(TileBufferDefaultSize, TileBufferMaxThreshold)
	tileSetBufferPool = NewByteBufferPool(TileSetBufferDefaultSize, TileSetBufferMaxThreshold)
)

// GetFeatureBuffer retrieves a small scratch ByteBuffer sized for a single
// feature's geometry and tag bytes.
func GetFeatureBuffer() *ByteBuffer { return tileBufferPool.Get() }

// PutFeatureBuffer returns a feature-scratch ByteBuffer to its pool.
func PutFeatureBuffer(bb *ByteBuffer) { tileBufferPool.Put(bb) }

// GetTileBuffer retrieves a scratch ByteBuffer sized for a whole serialized
// tile.
func GetTileBuffer() *ByteBuffer { return tileSetBufferPool.Get() }

// PutTileBuffer returns a tile-sized ByteBuffer to its pool.
func PutTileBuffer(bb *ByteBuffer) { tileSetBufferPool.Put(bb) }
