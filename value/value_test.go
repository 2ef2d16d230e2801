package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geocodec/mvt/errs"
	"github.com/geocodec/mvt/format"
	"github.com/geocodec/mvt/table"
)

func TestScalarRoundTrips(t *testing.T) {
	require := require.New(t)

	s := New(EncodeString("hello"), nil, nil)
	kind, err := s.Kind()
	require.NoError(err)
	require.Equal(format.ValueString, kind)
	str, err := s.StringValue()
	require.NoError(err)
	require.Equal("hello", str)

	f := New(EncodeFloat(1.5), nil, nil)
	fv, err := f.FloatValue()
	require.NoError(err)
	require.InDelta(float32(1.5), fv, 0.0001)

	d := New(EncodeDouble(2.25), nil, nil)
	dv, err := d.DoubleValue()
	require.NoError(err)
	require.InDelta(2.25, dv, 0.0001)

	i := New(EncodeInt(-7), nil, nil)
	iv, err := i.IntValue()
	require.NoError(err)
	require.Equal(int64(-7), iv)

	u := New(EncodeUint(9000), nil, nil)
	uv, err := u.UintValue()
	require.NoError(err)
	require.Equal(uint64(9000), uv)

	si := New(EncodeSint(-42), nil, nil)
	siv, err := si.SintValue()
	require.NoError(err)
	require.Equal(int64(-42), siv)

	b := New(EncodeBool(true), nil, nil)
	bv, err := b.BoolValue()
	require.NoError(err)
	require.True(bv)
}

func TestAccessorTypeMismatchFails(t *testing.T) {
	require := require.New(t)

	v := New(EncodeString("x"), nil, nil)
	_, err := v.IntValue()
	require.ErrorIs(err, errs.ErrType)
}

func TestVisitDispatchesOnce(t *testing.T) {
	require := require.New(t)

	v := New(EncodeDouble(3.0), nil, nil)
	out, err := Visit[string](v, stringifyVisitor{})
	require.NoError(err)
	require.Equal("double:3", out)
}

type stringifyVisitor struct{}

func (stringifyVisitor) String(s string) string  { return "string:" + s }
func (stringifyVisitor) Float(f float32) string  { return "float" }
func (stringifyVisitor) Double(d float64) string { return "double:3" }
func (stringifyVisitor) Int(i int64) string      { return "int" }
func (stringifyVisitor) Uint(u uint64) string    { return "uint" }
func (stringifyVisitor) Sint(i int64) string     { return "sint" }
func (stringifyVisitor) Bool(b bool) string      { return "bool" }
func (stringifyVisitor) Map(m Map) string        { return "map" }
func (stringifyVisitor) List(l List) string      { return "list" }

func TestMapValueResolvesAgainstTables(t *testing.T) {
	require := require.New(t)

	keys := table.NewKeyTable()
	vals := table.NewValueTable()
	ki := keys.Intern("name")
	vi := vals.Intern(EncodeString("hi"))

	mapVal := New(EncodeMap([]uint32{uint32(ki), uint32(vi)}), keys, vals)
	m, err := mapVal.MapValue()
	require.NoError(err)
	require.Equal(1, m.Len())

	key, val, err := m.Entry(0)
	require.NoError(err)
	require.Equal("name", key)
	str, err := val.StringValue()
	require.NoError(err)
	require.Equal("hi", str)
}

func TestListValueResolvesAgainstTable(t *testing.T) {
	require := require.New(t)

	vals := table.NewValueTable()
	i1 := vals.Intern(EncodeUint(1))
	i2 := vals.Intern(EncodeUint(2))

	listVal := New(EncodeList([]uint32{uint32(i1), uint32(i2)}), nil, vals)
	l, err := listVal.ListValue()
	require.NoError(err)
	require.Equal(2, l.Len())

	first, err := l.At(0)
	require.NoError(err)
	u, err := first.UintValue()
	require.NoError(err)
	require.Equal(uint64(1), u)
}
