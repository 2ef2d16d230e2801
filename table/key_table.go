// Package table implements the per-layer key and value interning tables of
// §4.2: ordered, append-only lists with two insertion modes, "without dup
// check" (unconditional append) and "with dup check" (return the existing
// index for an equal entry), grounded on the teacher's internal/hash.ID +
// internal/collision.Tracker pattern for metric-name interning.
package table

import (
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/internal/hash"
)

// KeyTable is a layer's ordered, deduplicated list of property key strings.
type KeyTable struct {
	keys    []string
	indexOf map[uint64][]int
}

// NewKeyTable creates an empty KeyTable.
func NewKeyTable() *KeyTable {
	return &KeyTable{indexOf: make(map[uint64][]int)}
}

// Len returns the number of interned keys.
func (t *KeyTable) Len() int { return len(t.keys) }

// Key returns the key string at index i. It reports false if i is out of
// range; the layer/feature readers turn that into ErrOutOfRange.
func (t *KeyTable) Key(i format.IndexValue) (string, bool) {
	if int(i) < 0 || int(i) >= len(t.keys) {
		return "", false
	}

	return t.keys[i], true
}

// Append unconditionally adds key and returns its new index: the "without
// dup check" insertion mode of §4.2, for callers ingesting a known-unique
// vocabulary.
func (t *KeyTable) Append(key string) format.IndexValue {
	idx := len(t.keys)
	t.keys = append(t.keys, key)
	h := hash.ID(key)
	t.indexOf[h] = append(t.indexOf[h], idx)

	return format.IndexValue(idx) //nolint:gosec
}

// Intern returns the existing index for key if already present, otherwise
// appends it: the "with dup check" insertion mode. The first insertion of a
// value wins; every later equal insert returns that same index.
func (t *KeyTable) Intern(key string) format.IndexValue {
	h := hash.ID(key)
	for _, idx := range t.indexOf[h] {
		if t.keys[idx] == key {
			return format.IndexValue(idx) //nolint:gosec
		}
	}

	return t.Append(key)
}

// All returns the interned keys in insertion order. The returned slice must
// not be mutated by the caller.
func (t *KeyTable) All() []string { return t.keys }
