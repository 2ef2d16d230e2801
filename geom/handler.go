package geom

import "github.com/geocodec/mvt/format"

// Handler callback groups, one per geometry grammar production. A caller's
// handler value implements only the groups relevant to the geometry types
// it decodes; Decode type-asserts for each group before calling it and
// never requires the others, mirroring the handler-subset contract of
// §4.5.

// PointsHandler receives POINT geometry events.
type PointsHandler interface {
	PointsBegin(count int)
	PointsPoint(p Point)
	PointsEnd()
}

// LineStringHandler receives LINESTRING geometry events, once per strand.
type LineStringHandler interface {
	LineStringBegin(count int)
	LineStringPoint(p Point)
	LineStringEnd()
}

// RingHandler receives POLYGON geometry events, once per ring. RingEnd is
// passed the ring's classification by signed area.
type RingHandler interface {
	RingBegin(count int)
	RingPoint(p Point)
	RingEnd(kind format.RingType)
}

// ControlPointsHandler receives SPLINE control-point events, decoded from
// the geometry command stream.
type ControlPointsHandler interface {
	ControlPointsBegin(count int)
	ControlPointsPoint(p Point)
	ControlPointsEnd()
}

// KnotsHandler receives SPLINE knot-vector events, decoded from the
// separate packed-double knots stream.
type KnotsHandler interface {
	KnotsBegin(count int)
	KnotsValue(v float64)
	KnotsEnd()
}

// Resulter is implemented by handlers that want Decode to return a value
// after a successful decode, mirroring the source's "handler with a
// result() method" idiom.
type Resulter[T any] interface {
	Result() T
}
