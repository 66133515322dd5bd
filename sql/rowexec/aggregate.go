package rowexec

import (
	"github.com/mitchellh/hashstructure"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
)

// AggregateOperator is a blocking hash group-by: it consumes the entire
// upstream, buckets rows by their group-key hash (mitchellh/hashstructure,
// the same composite-key hashing dolthub/go-mysql-server's index/hash package uses for
// row keys, reconstructed here for group keys), then emits one row per
// group through the aggregate kernels of sql/functions.
type AggregateOperator struct {
	source     sql.MorselIterator
	groups     []*expression.Node
	aggregates []*expression.Node
	schema     *sql.RelationSchema
	ev         *eval.Evaluator

	emitted bool
}

func NewAggregate(source sql.MorselIterator, groups, aggregates []*expression.Node, schema *sql.RelationSchema, ev *eval.Evaluator) *AggregateOperator {
	return &AggregateOperator{source: source, groups: groups, aggregates: aggregates, schema: schema, ev: ev}
}

type bucket struct {
	key     []interface{}
	rowArgs map[string][]interface{} // per-aggregate-parameter-set raw values, keyed by the aggregator's own identity
}

func (a *AggregateOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if a.emitted {
		return nil, errEOF
	}
	a.emitted = true

	order := make([]uint64, 0)
	buckets := make(map[uint64]*bucket)

	for {
		m, err := a.source.Next(ctx)
		if err == errEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := a.absorb(ctx, m, &order, buckets); err != nil {
			return nil, err
		}
	}

	if len(order) == 0 && len(a.groups) == 0 {
		// COUNT(*) and friends over an empty input still produce one row.
		order = append(order, 0)
		buckets[0] = &bucket{rowArgs: map[string][]interface{}{}}
	}

	out := make([]sql.Vector, 0, len(a.groups)+len(a.aggregates))
	for gi, g := range a.groups {
		vals := make([]interface{}, len(order))
		for i, h := range order {
			vals[i] = buckets[h].key[gi]
		}
		out = append(out, sql.Vector{Identity: g.Identity(), Name: g.QueryColumn, Type: g.Type(), Values: vals})
	}
	for _, agg := range a.aggregates {
		sig, ok := a.ev.Functions.Aggregate(agg.FunctionName)
		if !ok {
			continue
		}
		vals := make([]interface{}, len(order))
		for i, h := range order {
			argVals := buckets[h].rowArgs[agg.Identity()]
			v, _, err := sig.Aggregate(ctx, []sql.Vector{{Type: agg.Type(), Values: argVals}})
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		out = append(out, sql.Vector{Identity: agg.Identity(), Name: agg.QueryColumn, Type: agg.Type(), Values: vals})
	}

	return sql.NewMorsel(a.schema, out), nil
}

func (a *AggregateOperator) absorb(ctx *sql.Context, m *sql.Morsel, order *[]uint64, buckets map[uint64]*bucket) error {
	groupVecs := make([]sql.Vector, len(a.groups))
	for i, g := range a.groups {
		v, err := a.ev.Eval(ctx, m, g)
		if err != nil {
			return err
		}
		groupVecs[i] = v
	}
	argVecs := make(map[string]sql.Vector, len(a.aggregates))
	for _, agg := range a.aggregates {
		if len(agg.Parameters) == 0 {
			continue // COUNT(*): nothing to evaluate, the row count is tracked by one placeholder per row
		}
		v, err := a.ev.Eval(ctx, m, agg.Parameters[0])
		if err != nil {
			return err
		}
		argVecs[agg.Identity()] = v
	}

	for row := 0; row < m.RowCount(); row++ {
		key := make([]interface{}, len(a.groups))
		for i, v := range groupVecs {
			key[i] = v.Values[row]
		}
		h, err := hashstructure.Hash(key, nil)
		if err != nil {
			return err
		}
		b, ok := buckets[h]
		if !ok {
			b = &bucket{key: key, rowArgs: map[string][]interface{}{}}
			buckets[h] = b
			*order = append(*order, h)
		}
		for _, agg := range a.aggregates {
			if v, ok := argVecs[agg.Identity()]; ok {
				b.rowArgs[agg.Identity()] = append(b.rowArgs[agg.Identity()], v.Values[row])
			} else {
				b.rowArgs[agg.Identity()] = append(b.rowArgs[agg.Identity()], struct{}{})
			}
		}
	}
	return nil
}

func (a *AggregateOperator) Close(ctx *sql.Context) error { return a.source.Close(ctx) }
