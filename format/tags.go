package format

// WireType is the 3-bit protobuf-compatible wire type carried in the low
// bits of every tagged field's key varint.
type WireType uint8

const (
	WireVarint WireType = 0
	WireFixed64 WireType = 1
	WireBytes   WireType = 2
	WireFixed32 WireType = 5
)

// Tile message field numbers.
const (
	TileLayersField = 3
)

// Layer message field numbers.
const (
	LayerNameField       = 1
	LayerFeaturesField   = 2
	LayerKeysField       = 3
	LayerValuesField     = 4
	LayerExtentField     = 5
	LayerDimensionsField = 6
	LayerVersionField    = 15
)

// Feature message field numbers.
const (
	FeatureIDField       = 1
	FeatureTagsField     = 2
	FeatureTypeField     = 3
	FeatureGeometryField = 4
	FeatureKnotsField    = 5
)

// PropertyValue message field numbers and their required wire types. A
// value whose tag/wire-type pairing does not match this table is rejected
// with errs.ErrFormat per spec.md §6.
const (
	ValueStringField = 1
	ValueFloatField  = 2
	ValueDoubleField = 3
	ValueIntField    = 4
	ValueUintField   = 5
	ValueSintField   = 6
	ValueBoolField   = 7
	ValueMapField    = 8
	ValueListField   = 9
)

// ValueFieldWireType returns the wire type required for the given
// PropertyValue sub-field number, and false if the field number is not one
// of the nine recognized value fields.
func ValueFieldWireType(field int) (WireType, bool) {
	switch field {
	case ValueStringField, ValueMapField, ValueListField:
		return WireBytes, true
	case ValueFloatField:
		return WireFixed32, true
	case ValueDoubleField:
		return WireFixed64, true
	case ValueIntField, ValueUintField, ValueSintField, ValueBoolField:
		return WireVarint, true
	default:
		return 0, false
	}
}

// ValueFieldKind returns the ValueKind corresponding to a PropertyValue
// sub-field number.
func ValueFieldKind(field int) ValueKind {
	switch field {
	case ValueStringField:
		return ValueString
	case ValueFloatField:
		return ValueFloat
	case ValueDoubleField:
		return ValueDouble
	case ValueIntField:
		return ValueInt
	case ValueUintField:
		return ValueUint
	case ValueSintField:
		return ValueSint
	case ValueBoolField:
		return ValueBool
	case ValueMapField:
		return ValueMap
	case ValueListField:
		return ValueList
	default:
		return ValueUnknown
	}
}

// Geometry command ids (spec.md §4.5 / §6).
const (
	CmdMoveTo    = 1
	CmdLineTo    = 2
	CmdClosePath = 7
)

// MaxCommandCount is the largest repeat count a command integer can carry:
// a 32-bit word with 3 bits reserved for the command id leaves 29 bits for
// the count.
const MaxCommandCount = 1<<29 - 1
