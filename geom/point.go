// Package geom implements the geometry command-stream codec of §4.5: a
// decoder that walks a packed command/parameter stream and emits events to
// a caller-supplied handler, and an encoder builders use to produce that
// same stream from absolute points.
package geom

// Point is an absolute tile-local coordinate. Z is zero and unused when the
// owning layer's dimensions is 2.
type Point struct {
	X, Y, Z int64
}
