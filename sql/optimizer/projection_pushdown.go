package optimizer

import (
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// ProjectionPushdown narrows each Scan's ScanColumns to only the columns
// actually referenced anywhere above it in the plan, so a connector never
// reads a column the query never uses.
func ProjectionPushdown(p *plan.Plan) error {
	used := make(map[string]bool)
	collectIdentities(p, used)

	for _, n := range nodesOf(p) {
		if n.Kind != plan.ScanKind || n.ScanSchema == nil {
			continue
		}
		var cols []string
		for _, c := range n.ScanSchema.Columns {
			if used[c.Identity] {
				cols = append(cols, c.Name)
			}
		}
		if len(cols) > 0 && len(cols) < len(n.ScanSchema.Columns) {
			n.ScanColumns = cols
		}
	}
	return nil
}

func collectIdentities(p *plan.Plan, used map[string]bool) {
	mark := func(e *expression.Node) {
		expression.Walk(e, func(n *expression.Node) bool {
			if n.Bound() {
				used[n.Identity()] = true
			}
			return true
		})
	}
	for _, n := range nodesOf(p) {
		mark(n.Condition)
		mark(n.On)
		mark(n.UnnestColumn)
		for _, e := range n.Groups {
			mark(e)
		}
		for _, e := range n.Aggregates {
			mark(e)
		}
		for _, e := range n.DistinctOn {
			mark(e)
		}
		for _, e := range n.ProjectColumns {
			mark(e)
		}
		for _, e := range n.ExitColumns {
			mark(e)
		}
		for _, k := range n.OrderBy {
			mark(k.Expr)
		}
		for _, e := range n.FunctionArgs {
			mark(e)
		}
	}
}
