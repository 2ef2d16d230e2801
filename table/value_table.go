package table

import (
	"bytes"

	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/internal/hash"
)

// ValueTable is a layer's ordered, deduplicated list of encoded PropertyValue
// messages. Entries are stored as opaque DataViews: the table never
// interprets the value's kind, only its bytes, so dup-check comparison is a
// byte-equality check on the encoded form.
type ValueTable struct {
	values  []format.DataView
	indexOf map[uint64][]int
}

// NewValueTable creates an empty ValueTable.
func NewValueTable() *ValueTable {
	return &ValueTable{indexOf: make(map[uint64][]int)}
}

// Len returns the number of interned values.
func (t *ValueTable) Len() int { return len(t.values) }

// Value returns the encoded PropertyValue bytes at index i.
func (t *ValueTable) Value(i format.IndexValue) (format.DataView, bool) {
	if int(i) < 0 || int(i) >= len(t.values) {
		return nil, false
	}

	return t.values[i], true
}

// Append unconditionally adds the encoded value and returns its new index:
// the "without dup check" insertion mode of §4.2.
func (t *ValueTable) Append(encoded format.DataView) format.IndexValue {
	idx := len(t.values)
	t.values = append(t.values, encoded)
	h := hash.Bytes(encoded)
	t.indexOf[h] = append(t.indexOf[h], idx)

	return format.IndexValue(idx) //nolint:gosec
}

// Intern returns the existing index for an equal encoded value if already
// present, otherwise appends it: the "with dup check" insertion mode,
// hash-assisted via xxHash64 over the encoded bytes for O(1) average lookup
// instead of a linear byte-compare scan.
func (t *ValueTable) Intern(encoded format.DataView) format.IndexValue {
	h := hash.Bytes(encoded)
	for _, idx := range t.indexOf[h] {
		if bytes.Equal(t.values[idx], encoded) {
			return format.IndexValue(idx) //nolint:gosec
		}
	}

	return t.Append(encoded)
}

// All returns the interned encoded values in insertion order. The returned
// slice must not be mutated by the caller.
func (t *ValueTable) All() []format.DataView { return t.values }
