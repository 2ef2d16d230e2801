package wire

import (
	"encoding/binary"
	"math"

	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/internal/pool"
)

// Writer appends a tagged-field stream to a pooled, growable buffer. It is
// append-only: there is no seek or rewrite; bytes can only be discarded
// from the end with Truncate.
type Writer struct {
	buf *pool.ByteBuffer
	tmp [binary.MaxVarintLen64]byte
}

// NewWriter creates a Writer backed by a buffer drawn from the feature
// buffer pool.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetFeatureBuffer()}
}

// Release returns the Writer's buffer to its pool. The Writer must not be
// used afterward.
func (w *Writer) Release() {
	pool.PutFeatureBuffer(w.buf)
	w.buf = nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Bytes returns the accumulated bytes. The slice is valid until the next
// write or Truncate call.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Truncate discards everything written after byte offset n.
func (w *Writer) Truncate(n int) { w.buf.Truncate(n) }

// Tag writes a field key varint: (field << 3) | wireType.
func (w *Writer) Tag(field int, wireType format.WireType) {
	w.Varint(uint64(field)<<3 | uint64(wireType))
}

// Varint appends an unsigned LEB128 varint.
func (w *Writer) Varint(v uint64) {
	n := binary.PutUvarint(w.tmp[:], v)
	w.buf.Grow(n)
	w.buf.MustWrite(w.tmp[:n])
}

// Zigzag32 appends a signed 32-bit integer, zigzag-encoded then
// varint-written, matching the MVT geometry parameter encoding.
func (w *Writer) Zigzag32(v int32) {
	zz := uint32(v<<1) ^ uint32(v>>31)
	w.Varint(uint64(zz))
}

// Fixed32 appends a little-endian 32-bit fixed field.
func (w *Writer) Fixed32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.MustWrite(b[:])
}

// Fixed64 appends a little-endian 64-bit fixed field.
func (w *Writer) Fixed64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.MustWrite(b[:])
}

// Float appends a 32-bit IEEE-754 float field.
func (w *Writer) Float(v float32) {
	w.Fixed32(math.Float32bits(v))
}

// Double appends a 64-bit IEEE-754 double field.
func (w *Writer) Double(v float64) {
	w.Fixed64(math.Float64bits(v))
}

// WriteBytes writes a length-delimited field: the varint length prefix
// followed by data verbatim.
func (w *Writer) WriteBytes(data []byte) {
	w.Varint(uint64(len(data)))
	w.buf.Grow(len(data))
	w.buf.MustWrite(data)
}

// WriteString writes a length-delimited UTF-8 string field.
func (w *Writer) WriteString(s string) {
	w.Varint(uint64(len(s)))
	w.buf.Grow(len(s))
	w.buf.MustWrite([]byte(s))
}

// RawBytes appends data verbatim with no tag or length prefix. Used to
// splice an already tagged sub-message (such as a layer's pre-assembled
// feature region) directly into a parent message.
func (w *Writer) RawBytes(data []byte) {
	w.buf.Grow(len(data))
	w.buf.MustWrite(data)
}

// AppendPackedUint32 encodes a slice of uint32 as a packed repeated varint
// field's inner bytes (without the outer tag/length, which the caller
// writes via WriteBytes on the result).
func AppendPackedUint32(values []uint32) []byte {
	var tmp [binary.MaxVarintLen64]byte
	out := make([]byte, 0, len(values)*2)
	for _, v := range values {
		n := binary.PutUvarint(tmp[:], uint64(v))
		out = append(out, tmp[:n]...)
	}

	return out
}

// AppendPackedDouble encodes a slice of float64 as packed fixed64 doubles.
func AppendPackedDouble(values []float64) []byte {
	out := make([]byte, 0, len(values)*8)
	var b [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		out = append(out, b[:]...)
	}

	return out
}
