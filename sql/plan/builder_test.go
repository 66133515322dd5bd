package plan

import (
	"testing"

	"github.com/dolthub/vitess/go/vt/sqlparser"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, query string) *Plan {
	t.Helper()
	stmt, err := sqlparser.Parse(query)
	require.NoError(t, err)
	p, err := BuildPlan(stmt, TemporalRange{})
	require.NoError(t, err)
	return p
}

func TestBuildPlanSimpleSelectShape(t *testing.T) {
	require := require.New(t)
	p := mustBuild(t, "SELECT name FROM planets WHERE id > 4 ORDER BY name LIMIT 10")

	root := p.Root()
	require.Equal(ExitKind, root.Kind)

	var kinds []Kind
	p.Walk(func(n *Node) { kinds = append(kinds, n.Kind) })
	require.Equal([]Kind{ScanKind, FilterKind, ProjectKind, OrderKind, LimitKind, ExitKind}, kinds)
}

func TestBuildPlanGroupByProducesAggregateNode(t *testing.T) {
	require := require.New(t)
	p := mustBuild(t, "SELECT name, COUNT(*) FROM planets GROUP BY name")

	var kinds []Kind
	p.Walk(func(n *Node) { kinds = append(kinds, n.Kind) })
	require.Contains(kinds, AggregateKind)
	require.Contains(kinds, ProjectKind)
}

func TestBuildPlanJoinProducesJoinNode(t *testing.T) {
	require := require.New(t)
	p := mustBuild(t, "SELECT * FROM planets p JOIN satellites s ON p.id = s.planet_id")

	var kinds []Kind
	p.Walk(func(n *Node) { kinds = append(kinds, n.Kind) })
	require.Contains(kinds, JoinKind)
}

func TestBuildPlanRejectsUnsupportedStatement(t *testing.T) {
	require := require.New(t)
	stmt, err := sqlparser.Parse("DELETE FROM planets")
	require.NoError(err)
	_, err = BuildPlan(stmt, TemporalRange{})
	require.Error(err)
}
