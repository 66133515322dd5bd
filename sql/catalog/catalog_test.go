package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/connector/memtable"
	"github.com/vectorsql/engine/sql/functions"
)

func TestRelationLookupAndNames(t *testing.T) {
	require := require.New(t)
	c := New(functions.NewRegistry())
	c.Register("$planets", memtable.NewPlanets())
	c.Register("$satellites", memtable.NewSatellites())

	require.True(c.HasRelation("$planets"))
	require.False(c.HasRelation("$missing"))

	conn, err := c.Relation("$planets")
	require.NoError(err)
	require.NotNil(conn)

	_, err = c.Relation("$missing")
	require.Error(err)

	require.Equal([]string{"$planets", "$satellites"}, c.RelationNames())
}

func TestFunctionLookupDelegatesToRegistry(t *testing.T) {
	require := require.New(t)
	c := New(functions.NewRegistry())

	_, ok := c.ScalarFunction("UPPER")
	require.True(ok)

	_, ok = c.AggregateFunction("SUM")
	require.True(ok)

	_, ok = c.ScalarFunction("NOT_A_FUNCTION")
	require.False(ok)

	require.Contains(c.FunctionNames(), "SUM")
}

var _ sql.Catalog = (*Catalog)(nil)
