package rowexec

import (
	"github.com/vectorsql/engine/sql"
)

// fakeIterator replays a fixed list of morsels then reports EOF.
type fakeIterator struct {
	morsels []*sql.Morsel
	pos     int
	closed  bool
}

func newFakeIterator(morsels ...*sql.Morsel) *fakeIterator {
	return &fakeIterator{morsels: morsels}
}

func (f *fakeIterator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if f.pos >= len(f.morsels) {
		return nil, errEOF
	}
	m := f.morsels[f.pos]
	f.pos++
	return m, nil
}

func (f *fakeIterator) Close(ctx *sql.Context) error {
	f.closed = true
	return nil
}

// fakeConnector backs a single in-memory morsel, for ScanOperator tests.
type fakeConnector struct {
	schema *sql.RelationSchema
	morsel *sql.Morsel
}

func (c *fakeConnector) GetDatasetSchema() (*sql.RelationSchema, error) { return c.schema, nil }

func (c *fakeConnector) ReadDataset(ctx *sql.Context, opts sql.ReadOptions) (sql.MorselIterator, error) {
	return newFakeIterator(c.morsel), nil
}

// singleIntColumnMorsel builds a one-column morsel of int64 values under a
// fresh identity, returning both the morsel and that identity.
func singleIntColumnMorsel(schemaName, colName string, values ...int64) (*sql.Morsel, string) {
	col := sql.NewFlatColumn(colName, sql.Int64, schemaName)
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	schema := sql.NewRelationSchema(schemaName).Append(col.Column)
	m := sql.NewMorsel(schema, []sql.Vector{{Identity: col.Identity, Name: colName, Type: sql.Int64, Values: vals}})
	return m, col.Identity
}
