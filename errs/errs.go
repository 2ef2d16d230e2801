// Package errs defines the sentinel errors returned by the mvt packages.
//
// Every public read or build operation in this module returns one of these
// sentinels (wrapped with additional context via fmt.Errorf("%w: ...", ...))
// rather than a bespoke error type. Callers should use errors.Is against the
// values in this package.
package errs

import "errors"

var (
	// ErrMalformedWire is returned when the underlying bytes do not form a
	// valid tagged-field stream: a truncated varint, a length-delimited field
	// whose declared length exceeds the remaining bytes, a wire type that
	// does not match the field it tags, a singular field repeated, or a
	// packed tags/tag-index stream with an odd number of entries.
	ErrMalformedWire = errors.New("mvt: malformed wire data")

	// ErrUnsupportedVersion is returned when a layer's version field is
	// outside the supported set {1, 2, 3}, or when a dimensions value
	// outside {2, 3} is encountered by a decoder or requested of a builder.
	ErrUnsupportedVersion = errors.New("mvt: unsupported layer version or dimensions")

	// ErrType is returned when a PropertyValue accessor is called against a
	// value whose kind does not match the accessor.
	ErrType = errors.New("mvt: property value type mismatch")

	// ErrOutOfRange is returned when a key or value index referenced by a
	// feature, map, or list exceeds the bounds of its owning layer's table.
	ErrOutOfRange = errors.New("mvt: index out of range")

	// ErrGeometry is returned when a geometry command stream violates the
	// grammar for its declared geometry type: a missing or misordered
	// command, a zero count where one or more is required, a ClosePath with
	// count != 1, or trailing data past the end of a well-formed geometry.
	ErrGeometry = errors.New("mvt: invalid geometry command stream")

	// ErrFormat is returned for semantic overflow conditions such as a
	// linestring or ring claiming more than 2^29 points, or a command count
	// exceeding the wire format's 29-bit budget. It is also returned for a
	// PropertyValue field whose wire type does not match its field number.
	ErrFormat = errors.New("mvt: format limit exceeded")

	// ErrBuilderState is returned when a builder method is called out of
	// the order required by its state machine (for example, adding a
	// property before any geometry has been supplied). Unlike the above,
	// this is a programmer error: a correctly-sequenced caller never
	// triggers it.
	ErrBuilderState = errors.New("mvt: builder used out of order")
)
