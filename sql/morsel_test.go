package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleMorsel() *Morsel {
	schema := NewRelationSchema("planets")
	idCol := NewFlatColumn("id", Int64, "planets")
	nameCol := NewFlatColumn("name", Varchar, "planets")
	schema.Append(idCol.Column).Append(nameCol.Column)
	return NewMorsel(schema, []Vector{
		{Identity: idCol.Identity, Name: "id", Type: Int64, Values: []interface{}{int64(1), int64(2), int64(3)}},
		{Identity: nameCol.Identity, Name: "name", Type: Varchar, Values: []interface{}{"Mercury", "Venus", "Earth"}},
	})
}

func TestMorselRowCount(t *testing.T) {
	require.New(t).Equal(3, sampleMorsel().RowCount())
}

func TestMorselFilter(t *testing.T) {
	require := require.New(t)
	m := sampleMorsel()
	out := m.Filter([]bool{true, false, true})
	require.Equal(2, out.RowCount())
	require.Equal([]interface{}{int64(1), int64(3)}, out.Columns[0].Values)
}

func TestMorselProjectOrdersAndSelects(t *testing.T) {
	require := require.New(t)
	m := sampleMorsel()
	nameID := m.Columns[1].Identity
	out := m.Project([]string{nameID})
	require.Len(out.Columns, 1)
	require.Equal("name", out.Columns[0].Name)
}

func TestMorselSlice(t *testing.T) {
	require := require.New(t)
	m := sampleMorsel()
	out := m.Slice(1, 3)
	require.Equal(2, out.RowCount())
	require.Equal([]interface{}{int64(2), int64(3)}, out.Columns[0].Values)
}

func TestMorselConcat(t *testing.T) {
	require := require.New(t)
	m := sampleMorsel()
	tail := m.Slice(2, 3)
	out := m.Concat(tail)
	require.Equal(4, out.RowCount())
}

func TestMorselEstimatedBytesNonZero(t *testing.T) {
	require.New(t).Greater(sampleMorsel().EstimatedBytes(), int64(0))
}
