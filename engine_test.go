package sqle

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
)

func drainEngine(t *testing.T, it sql.MorselIterator) []*sql.Morsel {
	t.Helper()
	ctx := sql.NewEmptyContext()
	var out []*sql.Morsel
	for {
		m, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, m)
	}
	require.NoError(t, it.Close(ctx))
	return out
}

func columnValues(t *testing.T, morsels []*sql.Morsel, name string) []interface{} {
	t.Helper()
	var out []interface{}
	for _, m := range morsels {
		for _, c := range m.Columns {
			if c.Name == name {
				out = append(out, c.Values...)
			}
		}
	}
	return out
}

func TestSelectAllFromPlanetsReturnsNineRows(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	schema, it, err := e.Query(ctx, "SELECT * FROM `$planets`")
	require.NoError(err)
	require.NotNil(schema)

	morsels := drainEngine(t, it)
	names := columnValues(t, morsels, "name")
	require.Len(names, 9)
	require.Contains(names, "Earth")
}

func TestSelectWithWhereFiltersRows(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "SELECT name FROM `$planets` WHERE has_rings = true")
	require.NoError(err)

	morsels := drainEngine(t, it)
	names := columnValues(t, morsels, "name")
	require.ElementsMatch([]interface{}{"Jupiter", "Saturn", "Uranus", "Neptune"}, names)
}

func TestSelectWithLimitOffset(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "SELECT id FROM `$planets` LIMIT 3 OFFSET 1")
	require.NoError(err)

	morsels := drainEngine(t, it)
	ids := columnValues(t, morsels, "id")
	require.Equal([]interface{}{int64(2), int64(3), int64(4)}, ids)
}

func TestJoinPlanetsAndSatellites(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "SELECT `$satellites`.name FROM `$planets` JOIN `$satellites` ON `$planets`.id = `$satellites`.planet_id WHERE `$planets`.name = 'Earth'")
	require.NoError(err)

	morsels := drainEngine(t, it)
	names := columnValues(t, morsels, "name")
	require.Equal([]interface{}{"Moon"}, names)
}

func TestAggregateCountsMoonsPerPlanet(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "SELECT `$planets`.name, COUNT(`$satellites`.id) FROM `$planets` JOIN `$satellites` ON `$planets`.id = `$satellites`.planet_id WHERE `$planets`.name = 'Saturn' GROUP BY `$planets`.name")
	require.NoError(err)

	morsels := drainEngine(t, it)
	require.Len(morsels, 1)
	require.Equal(int64(1), morsels[0].RowCount())
}

func TestSetAssignsUserVariable(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, _, err := e.Query(ctx, "SET @greeting = 'hi'")
	require.NoError(err)

	_, val := ctx.Session().GetUserVariable("greeting")
	require.Equal("hi", val)
}

func TestShowColumnsListsPlanetSchema(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "SHOW COLUMNS FROM `$planets`")
	require.NoError(err)

	morsels := drainEngine(t, it)
	fields := columnValues(t, morsels, "Field")
	require.Contains(fields, "name")
	require.Contains(fields, "mass_kg")
}

func TestExplainRendersIndentedPlan(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.Query(ctx, "EXPLAIN SELECT name FROM `$planets` WHERE id = 1")
	require.NoError(err)

	morsels := drainEngine(t, it)
	lines := columnValues(t, morsels, "plan")
	require.NotEmpty(lines)
	require.Contains(lines[0], "Exit")
}

func TestForTodayTemporalClauseIsStripped(t *testing.T) {
	require := require.New(t)
	e := NewDefault()
	ctx := sql.NewEmptyContext()

	_, it, err := e.QueryAt(ctx, "SELECT id FROM `$planets` FOR TODAY", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(err)

	morsels := drainEngine(t, it)
	require.NotEmpty(morsels)
}
