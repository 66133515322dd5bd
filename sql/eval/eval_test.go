package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
)

func morselOf(values ...int64) (*sql.Morsel, *expression.Node) {
	col := sql.NewFlatColumn("n", sql.Int64, "t")
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	schema := sql.NewRelationSchema("t").Append(col.Column)
	m := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Type: sql.Int64, Values: vals}})
	id := expression.NewIdentifier("t", "n")
	c := col.Column
	id.SchemaColumn = &c
	return m, id
}

func TestEvalComparisonNullPropagates(t *testing.T) {
	require := require.New(t)
	col := sql.NewFlatColumn("n", sql.Int64, "t")
	schema := sql.NewRelationSchema("t").Append(col.Column)
	m := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Type: sql.Int64, Values: []interface{}{int64(5), nil}}})
	id := expression.NewIdentifier("t", "n")
	c := col.Column
	id.SchemaColumn = &c

	cmp := expression.NewComparison(sql.Gt, id, expression.NewLiteralNumber(1))
	ev := New(functions.NewRegistry())
	out, err := ev.Eval(sql.NewEmptyContext(), m, cmp)
	require.NoError(err)
	require.Equal(true, out.Values[0])
	require.Nil(out.Values[1])
}

func TestEvalArithPromotesToFloat(t *testing.T) {
	require := require.New(t)
	m, id := morselOf(2, 4)
	expr := expression.NewBinary(expression.Add, id, expression.NewLiteralNumber(1))
	ev := New(functions.NewRegistry())
	out, err := ev.Eval(sql.NewEmptyContext(), m, expr)
	require.NoError(err)
	require.Equal([]interface{}{3.0, 5.0}, out.Values)
}

func TestEvalUnaryIsNull(t *testing.T) {
	require := require.New(t)
	col := sql.NewFlatColumn("n", sql.Int64, "t")
	schema := sql.NewRelationSchema("t").Append(col.Column)
	m := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Type: sql.Int64, Values: []interface{}{nil, int64(1)}}})
	id := expression.NewIdentifier("t", "n")
	c := col.Column
	id.SchemaColumn = &c

	expr := expression.NewUnary(expression.IsNull, id)
	ev := New(functions.NewRegistry())
	out, err := ev.Eval(sql.NewEmptyContext(), m, expr)
	require.NoError(err)
	require.Equal([]interface{}{true, false}, out.Values)
}

func TestEvalAndShortCircuitsOnNull(t *testing.T) {
	require := require.New(t)
	col := sql.NewFlatColumn("n", sql.Boolean, "t")
	schema := sql.NewRelationSchema("t").Append(col.Column)
	m := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Type: sql.Boolean, Values: []interface{}{nil}}})
	id := expression.NewIdentifier("t", "n")
	c := col.Column
	id.SchemaColumn = &c

	expr := expression.NewAnd(id, expression.NewLiteralBoolean(true))
	ev := New(functions.NewRegistry())
	out, err := ev.Eval(sql.NewEmptyContext(), m, expr)
	require.NoError(err)
	require.Nil(out.Values[0])
}

func TestEvalFunctionCall(t *testing.T) {
	require := require.New(t)
	lit := expression.NewLiteralString("mercury")
	call := expression.NewFunction("UPPER", lit)
	m, _ := morselOf(1)
	ev := New(functions.NewRegistry())
	out, err := ev.Eval(sql.NewEmptyContext(), m, call)
	require.NoError(err)
	require.Equal("MERCURY", out.Values[0])
}
