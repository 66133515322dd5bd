// Package eval is the vectorized expression evaluator: it
// walks a bound sql/expression.Node tree once per Morsel and produces a
// whole sql.Vector, never a per-row loop driven from outside. Structure
// mirrors dolthub/go-mysql-server's expression-evaluation contract
// (sql/expression, referenced throughout its sql/planbuilder tests)
// adapted from row-at-a-time to a single switch over NodeType operating
// on whole columns.
package eval

import (
	"math"

	"github.com/spf13/cast"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sqlerr"
)

// Evaluator evaluates bound expression trees against a Morsel, memoizing
// each sub-expression's result per pass keyed by its column identity.
type Evaluator struct {
	Functions *functions.Registry
	cache     map[string]sql.Vector
}

// New returns an Evaluator using reg for FUNCTION/AGGREGATOR dispatch.
func New(reg *functions.Registry) *Evaluator {
	return &Evaluator{Functions: reg}
}

// Eval computes e's value over every row of m, returning one Vector.
func (ev *Evaluator) Eval(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	ev.cache = make(map[string]sql.Vector)
	return ev.eval(ctx, m, e)
}

func (ev *Evaluator) eval(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	if e == nil {
		return sql.Vector{}, sqlerr.ErrInvalidInternalState.New("nil expression")
	}
	if e.Bound() {
		if v, ok := ev.cache[e.Identity()]; ok {
			return v, nil
		}
	}

	var out sql.Vector
	var err error
	switch e.NodeType {
	case expression.Identifier:
		v, ok := m.ByIdentity(e.Identity())
		if !ok {
			return sql.Vector{}, sqlerr.ErrColumnNotFound.New(e.SourceColumn, "")
		}
		out = v

	case expression.LiteralBoolean, expression.LiteralNumber, expression.LiteralString,
		expression.LiteralNull, expression.LiteralTimestamp:
		out = broadcast(e, m.RowCount())

	case expression.LiteralList:
		values := make([]interface{}, 0, len(e.Parameters))
		for _, p := range e.Parameters {
			if p.Value != nil {
				values = append(values, p.Value)
			}
		}
		out = sql.Vector{Identity: e.Identity(), Type: sql.List, Values: repeat(values, m.RowCount())}

	case expression.Nested:
		out, err = ev.eval(ctx, m, e.Centre)

	case expression.Not:
		var operand sql.Vector
		operand, err = ev.eval(ctx, m, e.Centre)
		if err == nil {
			out = mapBool(e, operand, func(b bool) bool { return !b })
		}

	case expression.And:
		out, err = ev.evalLogical(ctx, m, e, func(a, b bool) bool { return a && b })

	case expression.Or:
		out, err = ev.evalLogical(ctx, m, e, func(a, b bool) bool { return a || b })

	case expression.Xor:
		out, err = ev.evalLogical(ctx, m, e, func(a, b bool) bool { return a != b })

	case expression.UnaryOperator:
		out, err = ev.evalUnary(ctx, m, e)

	case expression.ComparisonOperator:
		out, err = ev.evalComparison(ctx, m, e)

	case expression.BinaryOperator:
		out, err = ev.evalArith(ctx, m, e)

	case expression.Function:
		out, err = ev.evalCall(ctx, m, e)

	case expression.Aggregator:
		// Aggregators are resolved by the Aggregate operator per group, not
		// by whole-morsel evaluation; reaching here means an aggregator
		// surfaced in a non-aggregate context.
		return sql.Vector{}, sqlerr.ErrInvalidInternalState.New("aggregator outside AggregateAndGroup")

	case expression.Wildcard:
		return sql.Vector{}, sqlerr.ErrInvalidInternalState.New("unexpanded wildcard")

	default:
		return sql.Vector{}, sqlerr.ErrNotSupported.New("expression node type")
	}
	if err != nil {
		return sql.Vector{}, err
	}
	out.Identity = e.Identity()
	if e.Bound() {
		ev.cache[e.Identity()] = out
	}
	return out, nil
}

func broadcast(e *expression.Node, n int) sql.Vector {
	values := make([]interface{}, n)
	for i := range values {
		values[i] = e.Value
	}
	return sql.Vector{Type: e.Type(), Values: values}
}

func repeat(v []interface{}, n int) []interface{} {
	out := make([]interface{}, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func (ev *Evaluator) evalLogical(ctx *sql.Context, m *sql.Morsel, e *expression.Node, fold func(a, b bool) bool) (sql.Vector, error) {
	left, err := ev.eval(ctx, m, e.Left)
	if err != nil {
		return sql.Vector{}, err
	}
	right, err := ev.eval(ctx, m, e.Right)
	if err != nil {
		return sql.Vector{}, err
	}
	n := m.RowCount()
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		lv, rv := left.Values[i], right.Values[i]
		if lv == nil || rv == nil {
			continue
		}
		lb, _ := cast.ToBoolE(lv)
		rb, _ := cast.ToBoolE(rv)
		out[i] = fold(lb, rb)
	}
	return sql.Vector{Type: sql.Boolean, Values: out}, nil
}

func mapBool(e *expression.Node, in sql.Vector, f func(bool) bool) sql.Vector {
	out := make([]interface{}, len(in.Values))
	for i, v := range in.Values {
		if v == nil {
			continue
		}
		b, _ := cast.ToBoolE(v)
		out[i] = f(b)
	}
	return sql.Vector{Type: sql.Boolean, Values: out}
}

// evalUnary implements the six IS-predicate kernels plus unary minus.
func (ev *Evaluator) evalUnary(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	operand, err := ev.eval(ctx, m, e.Centre)
	if err != nil {
		return sql.Vector{}, err
	}
	n := len(operand.Values)
	out := make([]interface{}, n)
	switch e.UnaryOp {
	case expression.IsNull:
		for i, v := range operand.Values {
			out[i] = v == nil
		}
		return sql.Vector{Type: sql.Boolean, Values: out}, nil
	case expression.IsNotNull:
		for i, v := range operand.Values {
			out[i] = v != nil
		}
		return sql.Vector{Type: sql.Boolean, Values: out}, nil
	case expression.IsTrue, expression.IsFalse, expression.IsNotTrue, expression.IsNotFalse:
		for i, v := range operand.Values {
			if v == nil {
				out[i] = e.UnaryOp == expression.IsNotTrue || e.UnaryOp == expression.IsNotFalse
				continue
			}
			b, _ := cast.ToBoolE(v)
			switch e.UnaryOp {
			case expression.IsTrue:
				out[i] = b
			case expression.IsFalse:
				out[i] = !b
			case expression.IsNotTrue:
				out[i] = !b
			case expression.IsNotFalse:
				out[i] = b
			}
		}
		return sql.Vector{Type: sql.Boolean, Values: out}, nil
	case expression.Negate:
		for i, v := range operand.Values {
			if v == nil {
				continue
			}
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return sql.Vector{}, err
			}
			out[i] = -f
		}
		return sql.Vector{Type: operand.Type, Values: out}, nil
	default:
		return sql.Vector{}, sqlerr.ErrNotSupported.New("unary operator")
	}
}

// evalComparison implements the COMPARISON_OPERATOR mask kernels,
// three-valued: a row with a NULL operand never satisfies
// any comparison (mirrors SQL NULL semantics).
func (ev *Evaluator) evalComparison(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	left, err := ev.eval(ctx, m, e.Left)
	if err != nil {
		return sql.Vector{}, err
	}
	right, err := ev.eval(ctx, m, e.Right)
	if err != nil {
		return sql.Vector{}, err
	}
	n := len(left.Values)
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		lv := left.Values[i]
		var rv interface{}
		if len(right.Values) == 1 {
			rv = right.Values[0]
		} else if i < len(right.Values) {
			rv = right.Values[i]
		}
		if lv == nil || rv == nil {
			continue
		}
		v, err := compare(e.ComparisonOp, lv, rv)
		if err != nil {
			return sql.Vector{}, err
		}
		out[i] = v
	}
	return sql.Vector{Type: sql.Boolean, Values: out}, nil
}

func compare(op sql.ComparisonOp, l, r interface{}) (bool, error) {
	if lf, err := cast.ToFloat64E(l); err == nil {
		if rf, err := cast.ToFloat64E(r); err == nil {
			return compareFloat(op, lf, rf)
		}
	}
	ls, err := cast.ToStringE(l)
	if err != nil {
		return false, err
	}
	rs, err := cast.ToStringE(r)
	if err != nil {
		return false, err
	}
	return compareString(op, ls, rs)
}

func compareFloat(op sql.ComparisonOp, l, r float64) (bool, error) {
	switch op {
	case sql.Eq:
		return l == r, nil
	case sql.NotEq:
		return l != r, nil
	case sql.Gt:
		return l > r, nil
	case sql.GtEq:
		return l >= r, nil
	case sql.Lt:
		return l < r, nil
	case sql.LtEq:
		return l <= r, nil
	default:
		return false, sqlerr.ErrNotSupported.New("comparison operator")
	}
}

func compareString(op sql.ComparisonOp, l, r string) (bool, error) {
	switch op {
	case sql.Eq:
		return l == r, nil
	case sql.NotEq:
		return l != r, nil
	case sql.Gt:
		return l > r, nil
	case sql.GtEq:
		return l >= r, nil
	case sql.Lt:
		return l < r, nil
	case sql.LtEq:
		return l <= r, nil
	default:
		return false, sqlerr.ErrNotSupported.New("comparison operator")
	}
}

// evalArith implements the BINARY_OPERATOR arithmetic kernels with
// int/float promotion via spf13/cast.
func (ev *Evaluator) evalArith(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	left, err := ev.eval(ctx, m, e.Left)
	if err != nil {
		return sql.Vector{}, err
	}
	right, err := ev.eval(ctx, m, e.Right)
	if err != nil {
		return sql.Vector{}, err
	}
	n := len(left.Values)
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		lv, rv := left.Values[i], right.Values[i]
		if lv == nil || rv == nil {
			continue
		}
		lf, err := cast.ToFloat64E(lv)
		if err != nil {
			return sql.Vector{}, err
		}
		rf, err := cast.ToFloat64E(rv)
		if err != nil {
			return sql.Vector{}, err
		}
		switch e.ArithOp {
		case expression.Add:
			out[i] = lf + rf
		case expression.Subtract:
			out[i] = lf - rf
		case expression.Multiply:
			out[i] = lf * rf
		case expression.Divide:
			if rf == 0 {
				continue
			}
			out[i] = lf / rf
		case expression.Modulo:
			if rf == 0 {
				continue
			}
			out[i] = math.Mod(lf, rf)
		}
	}
	return sql.Vector{Type: sql.Float64, Values: out}, nil
}

func (ev *Evaluator) evalCall(ctx *sql.Context, m *sql.Morsel, e *expression.Node) (sql.Vector, error) {
	args := make([]sql.Vector, len(e.Parameters))
	for i, p := range e.Parameters {
		v, err := ev.eval(ctx, m, p)
		if err != nil {
			return sql.Vector{}, err
		}
		args[i] = v
	}
	sig, ok := ev.Functions.Scalar(e.FunctionName)
	if !ok || sig.Scalar == nil {
		return sql.Vector{}, sqlerr.ErrFunctionNotFound.New(e.FunctionName, "")
	}
	return sig.Scalar(ctx, args)
}
