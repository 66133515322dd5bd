package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
)

func TestOffsetTrimsStraddlingMorsel(t *testing.T) {
	require := require.New(t)
	m1, _ := singleIntColumnMorsel("t", "n", 1, 2, 3)
	m2, _ := singleIntColumnMorsel("t", "n", 4, 5)
	op := NewOffset(newFakeIterator(m1, m2), 4)

	out, err := op.Next(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([]interface{}{int64(5)}, out.Columns[0].Values)
}

func TestLimitStopsAtExactBoundary(t *testing.T) {
	require := require.New(t)
	m1, _ := singleIntColumnMorsel("t", "n", 1, 2, 3)
	m2, _ := singleIntColumnMorsel("t", "n", 4, 5)
	op := NewLimit(newFakeIterator(m1, m2), 4)

	ctx := sql.NewEmptyContext()
	out1, err := op.Next(ctx)
	require.NoError(err)
	require.Equal([]interface{}{int64(1), int64(2), int64(3)}, out1.Columns[0].Values)

	out2, err := op.Next(ctx)
	require.NoError(err)
	require.Equal([]interface{}{int64(4)}, out2.Columns[0].Values)

	_, err = op.Next(ctx)
	require.Equal(errEOF, err)
}
