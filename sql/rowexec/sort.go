package rowexec

import (
	"sort"

	"github.com/spf13/cast"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/plan"
)

// SortOperator materializes the entire upstream, orders it by the Order
// node's keys, and replays it as a single morsel. A blocking sort is
// allowed; there is no requirement to stream partial order.
type SortOperator struct {
	source sql.MorselIterator
	keys   []plan.OrderKey
	ev     *eval.Evaluator

	sorted *sql.Morsel
	done   bool
}

func NewSort(source sql.MorselIterator, keys []plan.OrderKey, ev *eval.Evaluator) *SortOperator {
	return &SortOperator{source: source, keys: keys, ev: ev}
}

func (s *SortOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if s.done {
		return nil, errEOF
	}
	s.done = true

	var all *sql.Morsel
	for {
		m, err := s.source.Next(ctx)
		if err == errEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		all = all.Concat(m)
	}
	if all == nil || all.RowCount() == 0 {
		return nil, errEOF
	}

	keyVectors := make([]sql.Vector, len(s.keys))
	for i, k := range s.keys {
		v, err := s.ev.Eval(ctx, all, k.Expr)
		if err != nil {
			return nil, err
		}
		keyVectors[i] = v
	}

	idx := make([]int, all.RowCount())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for i, k := range s.keys {
			va, vb := keyVectors[i].Values[idx[a]], keyVectors[i].Values[idx[b]]
			if (va == nil) != (vb == nil) {
				// Nulls sort last in either direction.
				return vb == nil
			}
			c := compareValues(va, vb)
			if c == 0 {
				continue
			}
			if k.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	s.sorted = reorder(all, idx)
	return s.sorted, nil
}

func reorder(m *sql.Morsel, idx []int) *sql.Morsel {
	out := make([]sql.Vector, len(m.Columns))
	for i, c := range m.Columns {
		vals := make([]interface{}, len(idx))
		for j, k := range idx {
			vals[j] = c.Values[k]
		}
		out[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: vals}
	}
	return sql.NewMorsel(m.Schema, out)
}

// compareValues orders nulls last, then numerically or lexically.
func compareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	if af, err := cast.ToFloat64E(a); err == nil {
		if bf, err := cast.ToFloat64E(b); err == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, _ := cast.ToStringE(a)
	bs, _ := cast.ToStringE(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func (s *SortOperator) Close(ctx *sql.Context) error { return s.source.Close(ctx) }
