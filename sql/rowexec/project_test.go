package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
)

func TestProjectEvaluatesColumnsAndRenamesViaAlias(t *testing.T) {
	require := require.New(t)
	m, identity := singleIntColumnMorsel("t", "n", 10, 20)
	col, _ := m.Schema.FindByIdentity(identity)

	id := boundColumn("t", "n", col)
	id.Alias = "doubled_source"

	outCol := sql.NewFlatColumn("doubled_source", sql.Int64, "$project")
	schema := sql.NewRelationSchema("$project").Append(outCol.Column)

	ev := eval.New(functions.NewRegistry())
	op := NewProject(newFakeIterator(m), []*expression.Node{id}, schema, ev)

	out, err := op.Next(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal("doubled_source", out.Columns[0].Name)
	require.Equal([]interface{}{int64(10), int64(20)}, out.Columns[0].Values)
}
