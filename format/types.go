// Package format holds the small value types shared across every mvt
// package: the borrowed-byte DataView, the table IndexValue, the GeomType
// and ValueKind enums, and the ring classification enum.
//
// None of these types allocate or depend on any other mvt package, which
// keeps them safely importable from wire, table, value, geom, layer,
// feature, and builder without import cycles.
package format

import "math"

// DataView is a borrowed (pointer, length) view into an externally owned
// byte buffer. It never copies the bytes it references: every decoded Tile,
// Layer, Feature, and PropertyValue holds one or more DataViews and is only
// valid for as long as the buffer they point into is alive and unmodified.
type DataView []byte

// IndexValue is a uint32 table index with a reserved sentinel meaning
// "no value" (the maximum representable uint32).
type IndexValue uint32

// InvalidIndex is the sentinel IndexValue meaning "absent" or "not found".
const InvalidIndex IndexValue = math.MaxUint32

// Valid reports whether the index is not the InvalidIndex sentinel.
func (i IndexValue) Valid() bool { return i != InvalidIndex }

// GeomType enumerates the feature geometry kinds carried by the MVT
// "type" field (Feature.type = 3).
type GeomType uint8

const (
	GeomUnknown    GeomType = 0
	GeomPoint      GeomType = 1
	GeomLineString GeomType = 2
	GeomPolygon    GeomType = 3
	GeomSpline     GeomType = 4
)

func (t GeomType) String() string {
	switch t {
	case GeomPoint:
		return "Point"
	case GeomLineString:
		return "LineString"
	case GeomPolygon:
		return "Polygon"
	case GeomSpline:
		return "Spline"
	default:
		return "Unknown"
	}
}

// ValueKind enumerates the nine mutually-exclusive sub-fields of a
// PropertyValue message.
type ValueKind uint8

const (
	ValueUnknown ValueKind = iota
	ValueString
	ValueFloat
	ValueDouble
	ValueInt
	ValueUint
	ValueSint
	ValueBool
	ValueMap
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueFloat:
		return "float"
	case ValueDouble:
		return "double"
	case ValueInt:
		return "int"
	case ValueUint:
		return "uint"
	case ValueSint:
		return "sint"
	case ValueBool:
		return "bool"
	case ValueMap:
		return "map"
	case ValueList:
		return "list"
	default:
		return "unknown"
	}
}

// RingType classifies a decoded polygon ring by the sign of its shoelace
// area, per the MVT spec's winding-order convention.
type RingType uint8

const (
	RingInvalid RingType = iota
	RingOuter
	RingInner
)

func (r RingType) String() string {
	switch r {
	case RingOuter:
		return "outer"
	case RingInner:
		return "inner"
	default:
		return "invalid"
	}
}
