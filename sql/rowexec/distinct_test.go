package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
)

func TestDistinctSuppressesRepeatedTuplesAcrossMorsels(t *testing.T) {
	require := require.New(t)
	col := sql.NewFlatColumn("n", sql.Int64, "t")
	schema := sql.NewRelationSchema("t").Append(col.Column)
	m1 := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Name: "n", Type: sql.Int64, Values: []interface{}{int64(1), int64(2), int64(1)}}})
	m2 := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Name: "n", Type: sql.Int64, Values: []interface{}{int64(2), int64(3)}}})

	op := NewDistinct(newFakeIterator(m1, m2))
	ctx := sql.NewEmptyContext()

	out1, err := op.Next(ctx)
	require.NoError(err)
	require.Equal([]interface{}{int64(1), int64(2)}, out1.Columns[0].Values)

	out2, err := op.Next(ctx)
	require.NoError(err)
	require.Equal([]interface{}{int64(3)}, out2.Columns[0].Values)

	_, err = op.Next(ctx)
	require.Equal(errEOF, err)
}
