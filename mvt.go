// Package mvt implements the Mapbox Vector Tile wire format: a
// protobuf-compatible tagged-field encoding for a Tile containing named
// Layers, each holding Features whose geometry is a varint/zigzag-32
// command stream and whose properties are indices into a per-layer
// key/value dictionary.
//
// This package provides convenient top-level wrappers around the
// layer/feature/geom/builder packages for the most common use cases. For
// advanced usage and fine-grained control, use those packages directly.
//
// # Basic Usage
//
// Decoding a tile:
//
//	tile, err := mvt.NewTileReader(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l, ok := tile.LayerByName("poi")
//	if !ok {
//	    return
//	}
//	for i := 0; i < l.NumFeatures(); i++ {
//	    f, err := l.NextFeature(i)
//	    ...
//	}
//
// Building a tile:
//
//	tb := mvt.NewTileBuilder()
//	lb := tb.NewLayer("poi")
//	fb := lb.NewPointFeature()
//	fb.SetID(1)
//	fb.AddPoints([]geom.Point{{X: 25, Y: 17}})
//	fb.AddStringProperty("kind", "restaurant")
//	fb.Commit()
//	data := tb.Serialize()
package mvt

import (
	"fmt"

	"github.com/geocodec/mvt/builder"
	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/layer"
	"github.com/geocodec/mvt/tilecompress"
	"github.com/geocodec/mvt/wire"
)

// Tile holds a decoded Tile message's layers. Like layer.Reader and
// feature.Reader, it borrows data: the buffer NewTileReader was given
// must remain alive and unmodified for as long as the Tile or anything
// decoded from it is in use.
type Tile struct {
	layers []*layer.Reader
}

// NewTileReader decodes a Tile message's repeated layer fields. Each
// layer is decoded eagerly (per layer.New's contract); feature decoding
// within a layer stays lazy.
func NewTileReader(data format.DataView) (*Tile, error) {
	t := &Tile{}

	r := wire.NewReader(data)
	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if field != format.TileLayersField {
			if err := r.SkipValue(wt); err != nil {
				return nil, err
			}
			continue
		}
		if wt != format.WireBytes {
			return nil, fmt.Errorf("%w: tile layer has wire type %d", errs.ErrMalformedWire, wt)
		}
		b, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		l, err := layer.New(b)
		if err != nil {
			return nil, err
		}
		t.layers = append(t.layers, l)
	}

	return t, nil
}

// ReadCompressedTile decompresses data with codec and decodes the result
// as a Tile. Use tilecompress.GetCodec to resolve a codec from a
// CompressionType recorded out-of-band (MVT carries no in-band
// compression marker).
func ReadCompressedTile(data []byte, codec tilecompress.Codec) (*Tile, error) {
	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("mvt: decompressing tile: %w", err)
	}

	return NewTileReader(raw)
}

// NumLayers returns the number of layers in the tile.
func (t *Tile) NumLayers() int { return len(t.layers) }

// Layer returns the layer at index i in wire order.
func (t *Tile) Layer(i int) (*layer.Reader, error) {
	if i < 0 || i >= len(t.layers) {
		return nil, fmt.Errorf("%w: layer index %d", errs.ErrOutOfRange, i)
	}

	return t.layers[i], nil
}

// LayerByName returns the first layer named name, or false if none
// matches. Layer names are not required to be unique; only the first
// match is returned, matching vtzero's lookup semantics.
func (t *Tile) LayerByName(name string) (*layer.Reader, bool) {
	for _, l := range t.layers {
		if l.Name() == name {
			return l, true
		}
	}

	return nil, false
}

// Layers returns every layer in wire order. The returned slice is owned
// by the Tile and must not be modified.
func (t *Tile) Layers() []*layer.Reader { return t.layers }

// NewTileBuilder creates an empty builder.TileBuilder for assembling a
// new tile from scratch.
func NewTileBuilder() *builder.TileBuilder {
	return builder.NewTileBuilder()
}
