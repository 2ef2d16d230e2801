package value

import (
	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
)

// Map is a nested map_value: a packed index stream of (key_index,
// value_index) pairs resolved against the owning layer's key and value
// tables. It holds a non-owning reference to those tables, never copying
// them.
type Map struct {
	keys *table.KeyTable
	vals *table.ValueTable
	idx  []uint32
}

// Len returns the number of key/value entries.
func (m Map) Len() int { return len(m.idx) / 2 }

// Entry resolves the i-th (key, value) pair. It fails with ErrOutOfRange if
// either index exceeds the owning layer's tables.
func (m Map) Entry(i int) (string, Value, error) {
	if i < 0 || i >= m.Len() {
		return "", Value{}, errs.ErrOutOfRange
	}

	ki := format.IndexValue(m.idx[2*i])
	vi := format.IndexValue(m.idx[2*i+1])

	key, ok := m.keys.Key(ki)
	if !ok {
		return "", Value{}, errs.ErrOutOfRange
	}
	encoded, ok := m.vals.Value(vi)
	if !ok {
		return "", Value{}, errs.ErrOutOfRange
	}

	return key, New(encoded, m.keys, m.vals), nil
}

// ForEach calls fn for each entry in index order, stopping early (without
// error) if fn returns false.
func (m Map) ForEach(fn func(key string, val Value) bool) error {
	for i := 0; i < m.Len(); i++ {
		key, val, err := m.Entry(i)
		if err != nil {
			return err
		}
		if !fn(key, val) {
			return nil
		}
	}

	return nil
}

// List is a nested list_value: a packed index stream of value indices into
// the owning layer's value table.
type List struct {
	vals *table.ValueTable
	idx  []uint32
}

// Len returns the number of elements.
func (l List) Len() int { return len(l.idx) }

// At resolves the i-th element. It fails with ErrOutOfRange if the index
// exceeds the owning layer's value table.
func (l List) At(i int) (Value, error) {
	if i < 0 || i >= l.Len() {
		return Value{}, errs.ErrOutOfRange
	}

	vi := format.IndexValue(l.idx[i])
	encoded, ok := l.vals.Value(vi)
	if !ok {
		return Value{}, errs.ErrOutOfRange
	}

	return New(encoded, nil, l.vals), nil
}

// ForEach calls fn for each element in index order, stopping early
// (without error) if fn returns false.
func (l List) ForEach(fn func(val Value) bool) error {
	for i := 0; i < l.Len(); i++ {
		val, err := l.At(i)
		if err != nil {
			return err
		}
		if !fn(val) {
			return nil
		}
	}

	return nil
}
