package expression

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vectorsql/engine/sql"
)

func TestFormatDeterministic(t *testing.T) {
	require := require.New(t)
	e := NewComparison(sql.Gt, NewIdentifier("t", "id"), NewLiteralNumber(4))
	require.Equal(Format(e), Format(e))
	require.Equal("t.id > 4", Format(e))
}

func TestFormatFunctionCallUppercasesName(t *testing.T) {
	require := require.New(t)
	e := NewFunction("upper", NewIdentifier("", "name"))
	require.Equal("UPPER(name)", Format(e))
}

func TestFormatStructurallyEqualTreesMatch(t *testing.T) {
	require := require.New(t)
	a := NewAnd(NewComparison(sql.Eq, NewIdentifier("t", "a"), NewLiteralNumber(1)),
		NewComparison(sql.Lt, NewIdentifier("t", "b"), NewLiteralNumber(2)))
	b := NewAnd(NewComparison(sql.Eq, NewIdentifier("t", "a"), NewLiteralNumber(1)),
		NewComparison(sql.Lt, NewIdentifier("t", "b"), NewLiteralNumber(2)))
	require.Equal(Format(a), Format(b))
}

func TestDisplayNamePrefersAlias(t *testing.T) {
	require := require.New(t)
	e := NewFunction("count", NewIdentifier("", "id")).WithAlias("total")
	require.Equal("total", DisplayName(e))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	require := require.New(t)
	e := NewAnd(NewComparison(sql.Eq, NewIdentifier("t", "a"), NewLiteralNumber(1)), NewNot(NewIdentifier("t", "b")))
	var count int
	Walk(e, func(*Node) bool { count++; return true })
	require.Equal(6, count) // And, Eq, a, 1, Not, b
}

func TestCloneIsIndependent(t *testing.T) {
	require := require.New(t)
	e := NewComparison(sql.Eq, NewIdentifier("t", "a"), NewLiteralNumber(1))
	c := Clone(e)
	c.Left.SourceColumn = "changed"
	require.Equal("a", e.Left.SourceColumn)
	require.Equal("changed", c.Left.SourceColumn)
}
