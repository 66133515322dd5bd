// Package optimizer is the heuristic rewrite pass: a fixed
// chain of independent strategies, each a pure function of the bound
// LogicalPlan, applied once in a canonical order. There is no cost model
// and no fixed-point iteration — dolthub/go-mysql-server's own analyzer
// (sql/analyzer, reconstructed from sql/planbuilder's rule-ordering tests)
// runs its rule batches the same way: a fixed list, applied in sequence,
// not repeated until nothing changes.
package optimizer

import "github.com/vectorsql/engine/sql/plan"

// Strategy is one heuristic rewrite rule.
type Strategy func(p *plan.Plan) error

// Chain is the canonical strategy order.
var Chain = []Strategy{
	BooleanSimplification,
	SplitConjunctivePredicates,
	ConstantFolding,
	PredicateRewrite,
	PredicatePushdown,
	ProjectionPushdown,
	RedundantOperations,
	OperatorFusion,
}

// Optimize runs every strategy in Chain against p, in order, once.
func Optimize(p *plan.Plan) error {
	for _, s := range Chain {
		if err := s(p); err != nil {
			return err
		}
	}
	return nil
}

// nodesOf snapshots every node in the plan (via Walk) before a strategy
// mutates the graph — Walk's recursion reads the live children map, so
// rewriting while walking would skip or revisit nodes.
func nodesOf(p *plan.Plan) []*plan.Node {
	var out []*plan.Node
	p.Walk(func(n *plan.Node) { out = append(out, n) })
	return out
}
