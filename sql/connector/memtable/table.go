// Package memtable is the one concrete sql.Connector this module ships: an
// in-memory, column-oriented table. It stands in for disk/object-store/
// SQL-backed connectors that exist here only as a contract, the way
// dolthub/go-mysql-server's memory package (memory.NewTable, exercised throughout
// sql/plan's planbuilder tests) stands in for a real storage engine in its
// own test suite.
package memtable

import (
	"github.com/vectorsql/engine/sql"
)

// Table is a fixed, wholly-materialized dataset: every column already
// lives as one sql.Vector, so ReadDataset just slices and filters before
// streaming it out as morsels.
type Table struct {
	name       string
	schema     *sql.RelationSchema
	columns    []sql.Vector
	partition  string
	morselSize int
}

// New builds a Table named name from parallel columns; every vector must
// have the same length.
func New(name string, schema *sql.RelationSchema, columns []sql.Vector) *Table {
	return &Table{name: name, schema: schema, columns: columns, morselSize: 64}
}

func (t *Table) GetDatasetSchema() (*sql.RelationSchema, error) { return t.schema, nil }

// ReadDataset streams the table's rows, applying column projection and
// pushable predicates before any morsel is handed to the caller — the
// PredicatePushable/column-pruning contract a connector satisfies.
func (t *Table) ReadDataset(ctx *sql.Context, opts sql.ReadOptions) (sql.MorselIterator, error) {
	rowCount := 0
	if len(t.columns) > 0 {
		rowCount = t.columns[0].Len()
	}

	keep := make([]bool, rowCount)
	for i := range keep {
		keep[i] = true
	}
	for _, p := range opts.Predicates {
		applyPredicate(t.columns, p, keep)
	}

	cols := t.columns
	if opts.Columns != nil {
		cols = projectByName(t.schema, t.columns, opts.Columns)
	}
	if opts.JustSchema {
		keep = make([]bool, rowCount)
	}

	filtered := filterColumns(cols, keep)
	return &tableIterator{schema: t.schema, columns: filtered, morselSize: t.morselSize}, nil
}

func projectByName(schema *sql.RelationSchema, columns []sql.Vector, names []string) []sql.Vector {
	out := make([]sql.Vector, 0, len(names))
	for _, name := range names {
		col, ok := schema.FindByName(name)
		if !ok {
			continue
		}
		for _, v := range columns {
			if v.Identity == col.Identity {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func filterColumns(columns []sql.Vector, keep []bool) []sql.Vector {
	out := make([]sql.Vector, len(columns))
	for i, c := range columns {
		vals := make([]interface{}, 0, len(keep))
		for j, k := range keep {
			if k {
				vals = append(vals, c.Values[j])
			}
		}
		out[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: vals}
	}
	return out
}

// applyPredicate narrows keep to rows satisfying p, for the six comparisons
// a connector is allowed to accept as pushdown.
func applyPredicate(columns []sql.Vector, p sql.Predicate, keep []bool) {
	var target *sql.Vector
	for i := range columns {
		if columns[i].Identity == p.ColumnIdentity {
			target = &columns[i]
			break
		}
	}
	if target == nil {
		return
	}
	for i, v := range target.Values {
		if !keep[i] {
			continue
		}
		if v == nil || !satisfies(v, p.Op, p.Value) {
			keep[i] = false
		}
	}
}

func satisfies(v interface{}, op sql.ComparisonOp, want interface{}) bool {
	switch a := v.(type) {
	case int64:
		b, ok := toInt64(want)
		if !ok {
			return false
		}
		return compareOrdered(float64(a), float64(b), op)
	case float64:
		b, ok := toFloat64(want)
		if !ok {
			return false
		}
		return compareOrdered(a, b, op)
	case string:
		b, ok := want.(string)
		if !ok {
			return false
		}
		return compareStrings(a, b, op)
	case bool:
		b, ok := want.(bool)
		if !ok {
			return false
		}
		switch op {
		case sql.Eq:
			return a == b
		case sql.NotEq:
			return a != b
		default:
			return false
		}
	default:
		return false
	}
}

func compareOrdered(a, b float64, op sql.ComparisonOp) bool {
	switch op {
	case sql.Eq:
		return a == b
	case sql.NotEq:
		return a != b
	case sql.Gt:
		return a > b
	case sql.GtEq:
		return a >= b
	case sql.Lt:
		return a < b
	case sql.LtEq:
		return a <= b
	default:
		return false
	}
}

func compareStrings(a, b string, op sql.ComparisonOp) bool {
	switch op {
	case sql.Eq:
		return a == b
	case sql.NotEq:
		return a != b
	case sql.Gt:
		return a > b
	case sql.GtEq:
		return a >= b
	case sql.Lt:
		return a < b
	case sql.LtEq:
		return a <= b
	default:
		return false
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// SupportsPartitioning and PartitionScheme implement sql.Partitionable: a
// memtable has no real date-partitioned layout, so its partition scheme is
// empty and SupportsPartitioning reports false. The optimizer does not
// consult this capability.
func (t *Table) SupportsPartitioning() bool { return t.partition != "" }
func (t *Table) PartitionScheme() string    { return t.partition }

// SupportsCaching implements sql.Cacheable. A wholly in-memory table has no
// blob reads to cache, so this is always false.
func (t *Table) SupportsCaching() bool { return false }

// PushableOps and PushableTypes implement sql.PredicatePushable.
func (t *Table) PushableOps() []sql.ComparisonOp {
	return []sql.ComparisonOp{sql.Eq, sql.NotEq, sql.Gt, sql.GtEq, sql.Lt, sql.LtEq}
}

func (t *Table) PushableTypes() []sql.Type {
	return []sql.Type{sql.Int64, sql.Float64, sql.Varchar, sql.Boolean}
}
