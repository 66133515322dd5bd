package rowexec

import (
	"github.com/spf13/cast"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// FunctionDatasetOperator materializes one of the built-in table-valued
// functions into a single
// Morsel, produced once on the first Next call.
type FunctionDatasetOperator struct {
	morsel *sql.Morsel
	done   bool
}

// NewFunctionDataset evaluates n's FunctionArgs (all must already be bound
// literals; these sources take no input Morsel) and builds the operator.
func NewFunctionDataset(n *plan.Node) (*FunctionDatasetOperator, error) {
	var m *sql.Morsel
	var err error
	switch n.FunctionName {
	case plan.FakeFunction:
		m, err = materializeFake(n)
	case plan.GenerateSeriesFunction:
		m, err = materializeGenerateSeries(n)
	case plan.ValuesFunction, plan.UnnestFunction:
		m, err = materializeValueList(n)
	default:
		m = sql.NewMorsel(n.ScanSchema, nil)
	}
	if err != nil {
		return nil, err
	}
	return &FunctionDatasetOperator{morsel: m}, nil
}

func (f *FunctionDatasetOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if f.done {
		return nil, errEOF
	}
	f.done = true
	ctx.Statistics().AddMorsel(int64(f.morsel.RowCount()))
	return f.morsel, nil
}

func (f *FunctionDatasetOperator) Close(ctx *sql.Context) error { return nil }

// fakeNames is a small fixed pool; FAKE is meant for shape-testing
// queries, not statistically meaningful data, so a deterministic cycle
// beats pulling in a randomness dependency for it.
var fakeNames = []string{"Ada", "Grace", "Alan", "Katherine", "Hedy", "Margaret", "John", "Barbara"}

func materializeFake(n *plan.Node) (*sql.Morsel, error) {
	count := int64(10)
	if len(n.FunctionArgs) > 0 {
		count = cast.ToInt64(n.FunctionArgs[0].Value)
	}
	names := make([]interface{}, count)
	ages := make([]interface{}, count)
	for i := int64(0); i < count; i++ {
		names[i] = fakeNames[int(i)%len(fakeNames)]
		ages[i] = int64(20 + int(i)%50)
	}
	cols := columnsFor(n.ScanSchema, names, ages)
	return sql.NewMorsel(n.ScanSchema, cols), nil
}

func materializeGenerateSeries(n *plan.Node) (*sql.Morsel, error) {
	if len(n.FunctionArgs) < 2 {
		return sql.NewMorsel(n.ScanSchema, nil), nil
	}
	start := cast.ToInt64(n.FunctionArgs[0].Value)
	stop := cast.ToInt64(n.FunctionArgs[1].Value)
	step := int64(1)
	if len(n.FunctionArgs) > 2 {
		step = cast.ToInt64(n.FunctionArgs[2].Value)
	}
	if step == 0 {
		step = 1
	}
	var values []interface{}
	if step > 0 {
		for v := start; v <= stop; v += step {
			values = append(values, v)
		}
	} else {
		for v := start; v >= stop; v += step {
			values = append(values, v)
		}
	}
	return sql.NewMorsel(n.ScanSchema, columnsFor(n.ScanSchema, values)), nil
}

// materializeValueList handles both VALUES(1,2,3) (one row per argument)
// and UNNEST($list) (one row per element of a single LITERAL_LIST
// argument) under the shared single-column VALUE schema the binder
// assigns both functions.
func materializeValueList(n *plan.Node) (*sql.Morsel, error) {
	var values []interface{}
	if len(n.FunctionArgs) == 1 && n.FunctionArgs[0].NodeType == expression.LiteralList {
		for _, item := range n.FunctionArgs[0].Parameters {
			values = append(values, item.Value)
		}
	} else {
		for _, a := range n.FunctionArgs {
			values = append(values, a.Value)
		}
	}
	return sql.NewMorsel(n.ScanSchema, columnsFor(n.ScanSchema, values)), nil
}

// columnsFor pairs value slices with n.ScanSchema's columns positionally,
// the row count being whichever slice is longest (the function-dataset
// binder always produces as many value slices as schema columns).
func columnsFor(schema *sql.RelationSchema, valueSlices ...[]interface{}) []sql.Vector {
	cols := make([]sql.Vector, len(schema.Columns))
	for i, c := range schema.Columns {
		var values []interface{}
		if i < len(valueSlices) {
			values = valueSlices[i]
		}
		cols[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: values}
	}
	return cols
}
