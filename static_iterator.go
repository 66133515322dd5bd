package sqle

import (
	"io"

	"github.com/vectorsql/engine/sql"
)

// staticIterator yields exactly one Morsel built from fixed string columns
// (SET/SHOW/EXPLAIN's informational results, dialect list),
// then EOF.
type staticIterator struct {
	morsel *sql.Morsel
	done   bool
}

// newStaticIterator zips each columns[i] against schema.Columns[i]. A nil
// schema with no columns produces a zero-row result (SET's "no rows"
// response).
func newStaticIterator(schema *sql.RelationSchema, columns ...[]string) *staticIterator {
	if schema == nil {
		return &staticIterator{morsel: sql.NewMorsel(sql.NewRelationSchema(""), nil)}
	}
	vectors := make([]sql.Vector, len(schema.Columns))
	for i, c := range schema.Columns {
		var values []interface{}
		if i < len(columns) {
			values = make([]interface{}, len(columns[i]))
			for j, v := range columns[i] {
				values[j] = v
			}
		}
		vectors[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: values}
	}
	return &staticIterator{morsel: sql.NewMorsel(schema, vectors)}
}

func (s *staticIterator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.morsel, nil
}

func (s *staticIterator) Close(ctx *sql.Context) error { return nil }
