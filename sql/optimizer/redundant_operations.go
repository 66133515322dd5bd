package optimizer

import (
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// RedundantOperations drops steps that can't change the result: a Filter
// whose condition folded to literal TRUE (ConstantFolding/
// BooleanSimplification already reduced it that far), and a Distinct that
// sits directly on top of another Distinct.
func RedundantOperations(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		switch n.Kind {
		case plan.FilterKind:
			if isAlwaysTrue(n.Condition) {
				removeFilter(p, n)
			}
		case plan.DistinctKind:
			removeRedundantDistinct(p, n)
		}
	}
	return nil
}

func isAlwaysTrue(n *expression.Node) bool {
	return n != nil && n.NodeType == expression.LiteralBoolean && n.Value == true
}

func removeRedundantDistinct(p *plan.Plan, n *plan.Node) {
	children := p.Children(n)
	if len(children) != 1 || children[0].Kind != plan.DistinctKind {
		return
	}
	child := children[0]
	for _, parent := range p.Parents(n) {
		p.ReplaceChild(parent, n, child)
	}
	if p.Root() == n {
		p.SetRoot(child)
	}
	p.RemoveEdge(child, n)
	p.RemoveNode(n)
}
