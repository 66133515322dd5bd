package optimizer

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// ConstantFolding evaluates arithmetic and comparisons between two literal
// operands at plan-build time, so the evaluator never redoes the same
// constant computation once per morsel.
func ConstantFolding(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Condition != nil {
			n.Condition = foldConstants(n.Condition)
		}
		if n.On != nil {
			n.On = foldConstants(n.On)
		}
		for i, e := range n.ProjectColumns {
			n.ProjectColumns[i] = foldConstants(e)
		}
		for i, e := range n.ExitColumns {
			n.ExitColumns[i] = foldConstants(e)
		}
	}
	return nil
}

func foldConstants(n *expression.Node) *expression.Node {
	if n == nil {
		return nil
	}
	switch n.NodeType {
	case expression.BinaryOperator:
		left := foldConstants(n.Left)
		right := foldConstants(n.Right)
		n.Left, n.Right = left, right
		if left.NodeType == expression.LiteralNumber && right.NodeType == expression.LiteralNumber {
			if v, ok := foldArith(n.ArithOp, left.Value.(float64), right.Value.(float64)); ok {
				return expression.NewLiteralNumber(v)
			}
		}
		return n

	case expression.ComparisonOperator:
		left := foldConstants(n.Left)
		right := foldConstants(n.Right)
		n.Left, n.Right = left, right
		if left.NodeType.IsLiteral() && right.NodeType.IsLiteral() {
			if v, ok := foldComparison(n.ComparisonOp, left, right); ok {
				return expression.NewLiteralBoolean(v)
			}
		}
		return n

	case expression.Nested:
		n.Centre = foldConstants(n.Centre)
		return n

	case expression.Not:
		n.Centre = foldConstants(n.Centre)
		return n

	case expression.And, expression.Or, expression.Xor:
		n.Left = foldConstants(n.Left)
		n.Right = foldConstants(n.Right)
		return n

	case expression.Function:
		for i, a := range n.Parameters {
			n.Parameters[i] = foldConstants(a)
		}
		return n

	default:
		return n
	}
}

func foldArith(op expression.ArithOp, a, b float64) (float64, bool) {
	switch op {
	case expression.Add:
		return a + b, true
	case expression.Subtract:
		return a - b, true
	case expression.Multiply:
		return a * b, true
	case expression.Divide:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case expression.Modulo:
		if b == 0 {
			return 0, false
		}
		return float64(int64(a) % int64(b)), true
	default:
		return 0, false
	}
}

func foldComparison(op sql.ComparisonOp, left, right *expression.Node) (bool, bool) {
	if left.NodeType != expression.LiteralNumber || right.NodeType != expression.LiteralNumber {
		return false, false
	}
	a, b := left.Value.(float64), right.Value.(float64)
	switch op {
	case sql.Eq:
		return a == b, true
	case sql.NotEq:
		return a != b, true
	case sql.Gt:
		return a > b, true
	case sql.GtEq:
		return a >= b, true
	case sql.Lt:
		return a < b, true
	case sql.LtEq:
		return a <= b, true
	default:
		return false, false
	}
}
