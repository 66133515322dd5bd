package rowexec

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
)

// FilterOperator keeps only the rows of each upstream morsel where
// Condition evaluates truthy. A morsel that filters down to
// zero rows is skipped rather than passed on empty, so downstream
// operators never see a zero-row morsel mid-stream.
type FilterOperator struct {
	source    sql.MorselIterator
	condition *expression.Node
	ev        *eval.Evaluator
}

func NewFilter(source sql.MorselIterator, condition *expression.Node, ev *eval.Evaluator) *FilterOperator {
	return &FilterOperator{source: source, condition: condition, ev: ev}
}

func (f *FilterOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	for {
		m, err := f.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		mask, err := f.ev.Eval(ctx, m, f.condition)
		if err != nil {
			return nil, err
		}
		boolMask := make([]bool, len(mask.Values))
		for i, v := range mask.Values {
			if v != nil {
				boolMask[i], _ = v.(bool)
			}
		}
		out := m.Filter(boolMask)
		if out.RowCount() == 0 {
			continue
		}
		return out, nil
	}
}

func (f *FilterOperator) Close(ctx *sql.Context) error { return f.source.Close(ctx) }
