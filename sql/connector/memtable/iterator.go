package memtable

import (
	"io"

	"github.com/vectorsql/engine/sql"
)

// tableIterator streams a materialized column set out in fixed-size
// morsels, target morsel sizing applied at the connector
// boundary rather than left to the first operator that happens to touch
// the data.
type tableIterator struct {
	schema     *sql.RelationSchema
	columns    []sql.Vector
	morselSize int
	offset     int
}

func (it *tableIterator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	total := 0
	if len(it.columns) > 0 {
		total = it.columns[0].Len()
	}
	if it.offset >= total {
		return nil, io.EOF
	}
	end := it.offset + it.morselSize
	if end > total {
		end = total
	}

	out := make([]sql.Vector, len(it.columns))
	for i, c := range it.columns {
		out[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: c.Values[it.offset:end]}
	}
	it.offset = end
	return sql.NewMorsel(it.schema, out), nil
}

func (it *tableIterator) Close(ctx *sql.Context) error { return nil }
