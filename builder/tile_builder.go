package builder

import (
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/layer"
	"github.com/geocodec/mvt/tilecompress"
	"github.com/geocodec/mvt/wire"
)

// tileLayer is either a borrowed existing-layer DataView (copied verbatim
// at Serialize time) or a LayerBuilder under construction.
type tileLayer struct {
	existing format.DataView
	built    *LayerBuilder
}

// TileBuilder owns an ordered sequence of layers, each either newly built
// or an existing layer passed through verbatim.
type TileBuilder struct {
	layers []tileLayer
}

// NewTileBuilder creates an empty TileBuilder.
func NewTileBuilder() *TileBuilder {
	return &TileBuilder{}
}

// NewLayer starts a new, empty layer named name and appends it to the
// tile.
func (tb *TileBuilder) NewLayer(name string, opts ...LayerBuilderOption) *LayerBuilder {
	lb := NewLayerBuilder(name, opts...)
	tb.layers = append(tb.layers, tileLayer{built: lb})

	return lb
}

// NewLayerFromExisting starts a new layer seeded from an existing decoded
// layer's header and key/value vocabulary (features are not copied).
func (tb *TileBuilder) NewLayerFromExisting(r *layer.Reader) *LayerBuilder {
	lb := NewLayerBuilderFromExisting(r)
	tb.layers = append(tb.layers, tileLayer{built: lb})

	return lb
}

// AddExistingLayer appends an already-encoded Layer message verbatim; its
// bytes are copied into the serialized tile unchanged.
func (tb *TileBuilder) AddExistingLayer(raw format.DataView) {
	tb.layers = append(tb.layers, tileLayer{existing: raw})
}

// Serialize concatenates every layer as a tagged length-delimited Tile
// message. The caller owns the returned slice.
func (tb *TileBuilder) Serialize() []byte {
	w := wire.NewWriter()
	defer w.Release()

	for _, l := range tb.layers {
		w.Tag(format.TileLayersField, format.WireBytes)
		if l.existing != nil {
			w.WriteBytes(l.existing)
		} else {
			w.WriteBytes(l.built.serialize())
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// SerializeCompressed serializes the tile and compresses the result with
// codec, an optional external collaborator for callers persisting or
// transmitting tiles. Decoding never assumes compression; the caller must
// decompress before passing bytes to NewTileReader.
func (tb *TileBuilder) SerializeCompressed(codec tilecompress.Codec) ([]byte, error) {
	return codec.Compress(tb.Serialize())
}
