package optimizer

import (
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// SplitConjunctivePredicates rewrites a single Filter whose condition is an
// AND-chain into a chain of single-conjunct Filter nodes. Run before
// PredicatePushdown so each conjunct can be pushed independently —
// `WHERE a = 1 AND b > 2` must not block pushing `a = 1` down to a Scan
// just because `b` references a different relation.
func SplitConjunctivePredicates(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Kind != plan.FilterKind || n.Condition == nil {
			continue
		}
		conjuncts := flattenAnd(n.Condition)
		if len(conjuncts) < 2 {
			continue
		}
		splice(p, n, conjuncts)
	}
	return nil
}

func flattenAnd(n *expression.Node) []*expression.Node {
	if n.NodeType == expression.And {
		return append(flattenAnd(n.Left), flattenAnd(n.Right)...)
	}
	return []*expression.Node{n}
}

// splice replaces Filter node n with a chain of new Filter nodes, one per
// conjunct, preserving n's position between its child and parent(s).
func splice(p *plan.Plan, n *plan.Node, conjuncts []*expression.Node) {
	children := p.Children(n)
	if len(children) != 1 {
		return
	}
	source := children[0]

	prev := source
	for _, c := range conjuncts {
		f := p.NewNode(plan.FilterKind)
		f.Condition = c
		f.Relations = n.Relations
		p.AddEdge(prev, f)
		prev = f
	}

	for _, parent := range p.Parents(n) {
		p.ReplaceChild(parent, n, prev)
	}
	if p.Root() == n {
		p.SetRoot(prev)
	}
	p.RemoveEdge(source, n)
	p.RemoveNode(n)
}
