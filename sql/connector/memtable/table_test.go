package memtable

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
)

func drain(t *testing.T, it sql.MorselIterator) *sql.Morsel {
	ctx := sql.NewEmptyContext()
	var all *sql.Morsel
	for {
		m, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		all = all.Concat(m)
	}
	return all
}

func TestPlanetsHasNineRows(t *testing.T) {
	table := NewPlanets()
	it, err := table.ReadDataset(sql.NewEmptyContext(), sql.ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, 9, drain(t, it).RowCount())
}

func TestSatellitesJoinsToPlanetsByForeignKey(t *testing.T) {
	table := NewSatellites()
	schema, err := table.GetDatasetSchema()
	require.NoError(t, err)
	col, ok := schema.FindByName("planet_id")
	require.True(t, ok)
	require.Equal(t, sql.Int64, col.Type)
}

func TestReadDatasetPushesDownEqualityPredicate(t *testing.T) {
	table := NewPlanets()
	schema, _ := table.GetDatasetSchema()
	nameCol, _ := schema.FindByName("name")

	it, err := table.ReadDataset(sql.NewEmptyContext(), sql.ReadOptions{
		Predicates: []sql.Predicate{{ColumnIdentity: nameCol.Identity, Op: sql.Eq, Value: "Earth"}},
	})
	require.NoError(t, err)
	m := drain(t, it)
	require.Equal(t, 1, m.RowCount())
	v, _ := m.ByIdentity(nameCol.Identity)
	require.Equal(t, "Earth", v.Values[0])
}

func TestReadDatasetProjectsRequestedColumnsOnly(t *testing.T) {
	table := NewPlanets()
	it, err := table.ReadDataset(sql.NewEmptyContext(), sql.ReadOptions{Columns: []string{"name"}})
	require.NoError(t, err)
	m := drain(t, it)
	require.Len(t, m.Columns, 1)
	require.Equal(t, "name", m.Columns[0].Name)
}

func TestReadDatasetJustSchemaReturnsNoRows(t *testing.T) {
	table := NewPlanets()
	it, err := table.ReadDataset(sql.NewEmptyContext(), sql.ReadOptions{JustSchema: true})
	require.NoError(t, err)
	m, err := it.Next(sql.NewEmptyContext())
	require.Equal(t, io.EOF, err)
	require.Nil(t, m)
}

func TestPushableCapabilities(t *testing.T) {
	table := NewPlanets()
	require.False(t, table.SupportsCaching())
	require.Contains(t, table.PushableOps(), sql.Eq)
	require.Contains(t, table.PushableTypes(), sql.Varchar)
}
