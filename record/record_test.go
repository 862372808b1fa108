package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushAndCount(t *testing.T) {
	p := NewParsed()
	p.Push(NumberValue(12.5), "Height of station", "m")
	require.Equal(t, 1, p.Count())
	require.Equal(t, "Height of station", p.Records()[0].Name)
}

func TestRepeatingFinish(t *testing.T) {
	p := NewParsed()
	rep := p.StartRepeating(2)
	rep.Push(NumberValue(1))
	rep.Push(MissingValue)
	rep.Finish()

	require.Equal(t, 1, p.Count())
	require.Equal(t, DataRepeat, p.Records()[0].Data.Kind)
	require.Len(t, p.Records()[0].Data.Repeat, 2)
}

func TestArraySetValuesAndFinish(t *testing.T) {
	p := NewParsed()
	arr := p.StartArray(0)
	arr.SetValues([]float64{1, 2, MissVal})
	arr.Finish("Temperature", "K")

	require.Equal(t, 1, p.Count())
	rec := p.Records()[0]
	require.Equal(t, DataArray, rec.Data.Kind)
	require.Equal(t, "Temperature", rec.Name)
	require.Len(t, rec.Data.Array, 3)
}

func TestValueAsFloat64(t *testing.T) {
	v, ok := NumberValue(3.5).AsFloat64()
	require.True(t, ok)
	require.Equal(t, 3.5, v)

	v, ok = MissingValue.AsFloat64()
	require.True(t, ok)
	require.Equal(t, MissVal, v)

	_, ok = StringValue("x").AsFloat64()
	require.False(t, ok)
}

func TestRecordStringSingleScalar(t *testing.T) {
	r := Record{Name: "Height", Unit: "m", Data: Data{Kind: DataSingle, Single: NumberValue(12)}}
	require.Contains(t, r.String(), "Height :")
}

func TestRecordStringArraySummaryIncludesStats(t *testing.T) {
	r := Record{Name: "Temperature", Unit: "K", Data: Data{Kind: DataArray, Array: []float64{1, 2, 3}}}
	s := r.String()
	require.True(t, strings.Contains(s, "min=1.000"))
	require.True(t, strings.Contains(s, "max=3.000"))
}

func TestRecordStringSuppressesCodeTableUnit(t *testing.T) {
	r := Record{Name: "Type", Unit: "code table", Data: Data{Kind: DataSingle, Single: NumberValue(4)}}
	require.NotContains(t, r.String(), "code table")
}
