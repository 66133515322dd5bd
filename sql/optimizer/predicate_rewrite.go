package optimizer

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// PredicateRewrite canonicalizes comparisons so PredicatePushdown only has
// to recognize one shape: `column OP literal`, never `literal OP column`,
// and never `NOT (column OP literal)`. Runs after ConstantFolding so a
// rewrite never has to fold what it just flipped.
func PredicateRewrite(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Condition != nil {
			n.Condition = rewritePredicate(n.Condition)
		}
		if n.On != nil {
			n.On = rewritePredicate(n.On)
		}
	}
	return nil
}

func rewritePredicate(n *expression.Node) *expression.Node {
	if n == nil {
		return nil
	}
	switch n.NodeType {
	case expression.Not:
		n.Centre = rewritePredicate(n.Centre)
		if n.Centre.NodeType == expression.ComparisonOperator {
			if neg, ok := negate(n.Centre.ComparisonOp); ok {
				n.Centre.ComparisonOp = neg
				return n.Centre
			}
		}
		return n

	case expression.ComparisonOperator:
		n.Left = rewritePredicate(n.Left)
		n.Right = rewritePredicate(n.Right)
		if n.Left.NodeType.IsLiteral() && n.Right.NodeType == expression.Identifier {
			n.Left, n.Right = n.Right, n.Left
			n.ComparisonOp = flip(n.ComparisonOp)
		}
		return n

	case expression.Nested:
		n.Centre = rewritePredicate(n.Centre)
		return n

	case expression.And, expression.Or, expression.Xor:
		n.Left = rewritePredicate(n.Left)
		n.Right = rewritePredicate(n.Right)
		return n

	default:
		return n
	}
}

// flip returns the operator for `b OP a` given `a OP b`.
func flip(op sql.ComparisonOp) sql.ComparisonOp {
	switch op {
	case sql.Gt:
		return sql.Lt
	case sql.GtEq:
		return sql.LtEq
	case sql.Lt:
		return sql.Gt
	case sql.LtEq:
		return sql.GtEq
	default:
		return op // Eq/NotEq are symmetric
	}
}

// negate returns the operator for `NOT (a OP b)`, and whether a direct
// negation exists (IN/NOT IN style operators are left alone).
func negate(op sql.ComparisonOp) (sql.ComparisonOp, bool) {
	switch op {
	case sql.Eq:
		return sql.NotEq, true
	case sql.NotEq:
		return sql.Eq, true
	case sql.Gt:
		return sql.LtEq, true
	case sql.GtEq:
		return sql.Lt, true
	case sql.Lt:
		return sql.GtEq, true
	case sql.LtEq:
		return sql.Gt, true
	default:
		return op, false
	}
}
