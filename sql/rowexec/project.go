package rowexec

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
)

// ProjectOperator evaluates Columns against each upstream morsel and
// builds a new morsel whose schema matches the Project plan node's output.
type ProjectOperator struct {
	source  sql.MorselIterator
	columns []*expression.Node
	schema  *sql.RelationSchema
	ev      *eval.Evaluator
}

func NewProject(source sql.MorselIterator, columns []*expression.Node, schema *sql.RelationSchema, ev *eval.Evaluator) *ProjectOperator {
	return &ProjectOperator{source: source, columns: columns, schema: schema, ev: ev}
}

func (p *ProjectOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	m, err := p.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sql.Vector, len(p.columns))
	for i, col := range p.columns {
		v, err := p.ev.Eval(ctx, m, col)
		if err != nil {
			return nil, err
		}
		name := col.QueryColumn
		if col.Alias != "" {
			name = col.Alias
		}
		v.Name = name
		out[i] = v
	}
	return sql.NewMorsel(p.schema, out), nil
}

func (p *ProjectOperator) Close(ctx *sql.Context) error { return p.source.Close(ctx) }
