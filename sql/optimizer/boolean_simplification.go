package optimizer

import (
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// BooleanSimplification collapses literal-boolean redundancy in every
// Filter/Join condition: AND/OR with a constant branch, double negation,
// and NOT of a literal. Grounded the way dolthub/go-mysql-server's analyzer folds
// `WHERE 1=1 AND x`-style leftovers from view expansion before pushdown
// runs.
func BooleanSimplification(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Condition != nil {
			n.Condition = simplifyBoolean(n.Condition)
		}
		if n.On != nil {
			n.On = simplifyBoolean(n.On)
		}
	}
	return nil
}

func simplifyBoolean(n *expression.Node) *expression.Node {
	if n == nil {
		return nil
	}
	switch n.NodeType {
	case expression.Not:
		inner := simplifyBoolean(n.Centre)
		if inner.NodeType == expression.Not {
			return inner.Centre
		}
		if inner.NodeType == expression.LiteralBoolean {
			return expression.NewLiteralBoolean(!inner.Value.(bool))
		}
		n.Centre = inner
		return n

	case expression.And:
		left := simplifyBoolean(n.Left)
		right := simplifyBoolean(n.Right)
		if isLiteralBool(left, false) || isLiteralBool(right, false) {
			return expression.NewLiteralBoolean(false)
		}
		if isLiteralBool(left, true) {
			return right
		}
		if isLiteralBool(right, true) {
			return left
		}
		n.Left, n.Right = left, right
		return n

	case expression.Or:
		left := simplifyBoolean(n.Left)
		right := simplifyBoolean(n.Right)
		if isLiteralBool(left, true) || isLiteralBool(right, true) {
			return expression.NewLiteralBoolean(true)
		}
		if isLiteralBool(left, false) {
			return right
		}
		if isLiteralBool(right, false) {
			return left
		}
		n.Left, n.Right = left, right
		return n

	case expression.Nested:
		n.Centre = simplifyBoolean(n.Centre)
		return n

	default:
		return n
	}
}

func isLiteralBool(n *expression.Node, want bool) bool {
	if n == nil || n.NodeType != expression.LiteralBoolean {
		return false
	}
	b, ok := n.Value.(bool)
	return ok && b == want
}
