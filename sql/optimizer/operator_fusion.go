package optimizer

import (
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// OperatorFusion merges a Filter directly feeding another Filter into one
// node with an AND'd condition, undoing SplitConjunctivePredicates' extra
// node count for any conjunct PredicatePushdown couldn't push down.
func OperatorFusion(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Kind != plan.FilterKind || n.Condition == nil {
			continue
		}
		children := p.Children(n)
		if len(children) != 1 || children[0].Kind != plan.FilterKind || children[0].Condition == nil {
			continue
		}
		child := children[0]
		if len(p.Parents(child)) != 1 {
			continue // child feeds more than one consumer, can't fuse away
		}
		n.Condition = expression.NewAnd(child.Condition, n.Condition)

		grandchildren := p.Children(child)
		if len(grandchildren) != 1 {
			continue
		}
		source := grandchildren[0]
		p.ReplaceChild(n, child, source)
		p.RemoveEdge(source, child)
		p.RemoveNode(child)
	}
	return nil
}
