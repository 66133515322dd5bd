package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sql/plan"
)

func planetSides(t *testing.T) (left, right *sql.Morsel, leftID, rightID string) {
	leftCol := sql.NewFlatColumn("id", sql.Int64, "l")
	rightCol := sql.NewFlatColumn("lid", sql.Int64, "r")
	leftSchema := sql.NewRelationSchema("l").Append(leftCol.Column)
	rightSchema := sql.NewRelationSchema("r").Append(rightCol.Column)
	left = sql.NewMorsel(leftSchema, []sql.Vector{{Identity: leftCol.Identity, Name: "id", Type: sql.Int64, Values: []interface{}{int64(1), int64(2)}}})
	right = sql.NewMorsel(rightSchema, []sql.Vector{{Identity: rightCol.Identity, Name: "lid", Type: sql.Int64, Values: []interface{}{int64(2), int64(3)}}})
	return left, right, leftCol.Identity, rightCol.Identity
}

func joinedSchema(left, right *sql.RelationSchema) *sql.RelationSchema {
	out := sql.NewRelationSchema("$derived")
	for _, c := range left.Columns {
		out = out.Append(c)
	}
	for _, c := range right.Columns {
		out = out.Append(c)
	}
	return out
}

func equalityCondition(left, right *sql.Morsel, leftID, rightID string) *expression.Node {
	lc, _ := left.Schema.FindByIdentity(leftID)
	rc, _ := right.Schema.FindByIdentity(rightID)
	return expression.NewComparison(sql.Eq, boundColumn("l", "id", lc), boundColumn("r", "lid", rc))
}

func TestJoinInnerMatchesOnCondition(t *testing.T) {
	require := require.New(t)
	left, right, lid, rid := planetSides(t)
	schema := joinedSchema(left.Schema, right.Schema)
	cond := equalityCondition(left, right, lid, rid)
	ev := eval.New(functions.NewRegistry())

	op := NewJoin(newFakeIterator(left), newFakeIterator(right), plan.InnerJoin, cond, schema, ev)
	ctx := sql.NewEmptyContext()

	out, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(1, out.RowCount())

	_, err = op.Next(ctx)
	require.Equal(errEOF, err)
}

func TestJoinLeftOuterNullExtendsUnmatchedProbeRows(t *testing.T) {
	require := require.New(t)
	left, right, lid, rid := planetSides(t)
	schema := joinedSchema(left.Schema, right.Schema)
	cond := equalityCondition(left, right, lid, rid)
	ev := eval.New(functions.NewRegistry())

	op := NewJoin(newFakeIterator(right), newFakeIterator(left), plan.LeftOuterJoin, cond, schema, ev)
	ctx := sql.NewEmptyContext()

	out, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(2, out.RowCount())

	_, err = op.Next(ctx)
	require.Equal(errEOF, err)
}

func TestJoinRightOuterEmitsUnmatchedBuildRowsAfterProbeExhausted(t *testing.T) {
	require := require.New(t)
	left, right, lid, rid := planetSides(t)
	schema := joinedSchema(left.Schema, right.Schema)
	cond := equalityCondition(left, right, lid, rid)
	ev := eval.New(functions.NewRegistry())

	// build = left {1,2}, probe = right {2,3}: row id=1 never matches and
	// must surface, null-extended, once the probe side is drained.
	op := NewJoin(newFakeIterator(left), newFakeIterator(right), plan.RightOuterJoin, cond, schema, ev)
	ctx := sql.NewEmptyContext()

	matched, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(1, matched.RowCount())

	unmatched, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(1, unmatched.RowCount())
	leftIDVec, ok := unmatched.ByIdentity(lid)
	require.True(ok)
	require.Equal(int64(1), leftIDVec.Values[0])

	_, err = op.Next(ctx)
	require.Equal(errEOF, err)
}

func TestJoinLeftSemiReturnsOnlyMatchedProbeRowsOnce(t *testing.T) {
	require := require.New(t)
	left, right, lid, rid := planetSides(t)
	schema := left.Schema
	cond := equalityCondition(left, right, lid, rid)
	ev := eval.New(functions.NewRegistry())

	op := NewJoin(newFakeIterator(right), newFakeIterator(left), plan.LeftSemiJoin, cond, schema, ev)
	ctx := sql.NewEmptyContext()

	out, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(1, out.RowCount())
	require.Equal(int64(2), out.Columns[0].Values[0])
}

func TestJoinCrossPairsEveryRow(t *testing.T) {
	require := require.New(t)
	left, right, _, _ := planetSides(t)
	schema := joinedSchema(left.Schema, right.Schema)
	ev := eval.New(functions.NewRegistry())

	op := NewJoin(newFakeIterator(left), newFakeIterator(right), plan.CrossJoin, nil, schema, ev)
	ctx := sql.NewEmptyContext()

	out, err := op.Next(ctx)
	require.NoError(err)
	require.Equal(4, out.RowCount())
}
