package optimizer

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// PredicatePushdown walks each single-conjunct Filter (SplitConjunctivePredicates
// has already decomposed ANDs into a chain of one-condition Filter nodes)
// down through any Join whose one side alone carries every column the
// condition references, until it lands directly above a Scan. There it is
// folded into the Scan's Predicates when the connector advertises
// PredicatePushable and accepts the op/type pair; otherwise it stays in
// place immediately above the Scan. A Filter sitting directly above a
// CrossJoin whose condition touches both sides converts that join into an
// InnerJoin with the condition as its ON clause instead.
func PredicatePushdown(p *plan.Plan) error {
	for _, n := range nodesOf(p) {
		if n.Kind != plan.FilterKind || n.Condition == nil {
			continue
		}
		pushFilterDown(p, n)
	}
	return nil
}

// pushFilterDown repeatedly relocates f one step closer to a Scan: past a
// Join when f's condition is confined to one side, or by converting a
// CrossJoin into an equivalent InnerJoin when it spans both. It stops once
// f sits above a Scan (handed to pushIntoScan) or can go no further.
func pushFilterDown(p *plan.Plan, f *plan.Node) {
	for {
		children := p.Children(f)
		if len(children) != 1 {
			return
		}
		child := children[0]

		if child.Kind == plan.ScanKind {
			pushIntoScan(p, f, child)
			return
		}
		if child.Kind != plan.JoinKind {
			return
		}
		join := child
		joinChildren := p.Children(join)
		if len(joinChildren) != 2 {
			return
		}
		left, right := joinChildren[0], joinChildren[1]
		leftIDs := childColumnIdentities(left)
		rightIDs := childColumnIdentities(right)

		if convertCrossToInner(p, f, join, leftIDs, rightIDs) {
			return
		}

		condIDs := conditionIdentities(f.Condition)
		var target *plan.Node
		switch {
		case subsetOf(condIDs, leftIDs):
			target = left
		case subsetOf(condIDs, rightIDs):
			target = right
		default:
			return // spans both sides (or references neither): stays above the join
		}
		movePastJoin(p, f, join, target)
	}
}

// pushIntoScan folds f into scan.Predicates when scan's connector accepts
// it as pushdown; otherwise f is left directly above scan, which already
// satisfies the "filter sits immediately above its scan" placement.
func pushIntoScan(p *plan.Plan, f, scan *plan.Node) {
	if hasHint(scan.Hints, "NO_PUSHDOWN") {
		return
	}
	pp, ok := scan.Connector.(sql.PredicatePushable)
	if !ok {
		return
	}
	pred, ok := asPushablePredicate(f.Condition, scan, pp)
	if !ok {
		return
	}
	scan.Predicates = append(scan.Predicates, pred)
	removeFilter(p, f)
}

// convertCrossToInner rewrites join from a CrossJoin into an InnerJoin
// using f's condition as its ON clause, and removes f, when the condition
// references columns from both leftIDs and rightIDs. Reports whether it
// fired.
func convertCrossToInner(p *plan.Plan, f, join *plan.Node, leftIDs, rightIDs map[string]bool) bool {
	if join.JoinType != plan.CrossJoin {
		return false
	}
	touchesLeft, touchesRight := false, false
	for id := range conditionIdentities(f.Condition) {
		if leftIDs[id] {
			touchesLeft = true
		}
		if rightIDs[id] {
			touchesRight = true
		}
	}
	if !touchesLeft || !touchesRight {
		return false
	}
	join.JoinType = plan.InnerJoin
	join.On = f.Condition
	removeFilter(p, f)
	return true
}

// movePastJoin detaches f from directly above join and splices it in
// directly above target, one of join's two children, leaving join in f's
// former position. Used once f's condition is known to be confined to
// target's columns.
func movePastJoin(p *plan.Plan, f, join, target *plan.Node) {
	for _, parent := range p.Parents(f) {
		p.ReplaceChild(parent, f, join)
	}
	if p.Root() == f {
		p.SetRoot(join)
	}
	p.RemoveEdge(join, f)

	p.ReplaceChild(join, target, f)
	p.AddEdge(target, f)
}

// childColumnIdentities flattens every schema n's binder-assigned
// OutputSchemas exposes into a set of column identities — the columns
// visible from n's output, regardless of how many relations they came
// from or what aliases they're under.
func childColumnIdentities(n *plan.Node) map[string]bool {
	out := make(map[string]bool)
	for _, schema := range n.OutputSchemas {
		for _, c := range schema.Columns {
			out[c.Identity] = true
		}
	}
	return out
}

// conditionIdentities collects the bound column identities cond
// references.
func conditionIdentities(cond *expression.Node) map[string]bool {
	out := make(map[string]bool)
	expression.Walk(cond, func(e *expression.Node) bool {
		if e.NodeType == expression.Identifier && e.Bound() {
			out[e.Identity()] = true
		}
		return true
	})
	return out
}

// subsetOf reports whether every identity in ids also appears in allowed.
// An empty ids is never considered a subset, since a condition touching no
// bound column gives no basis for relocating it.
func subsetOf(ids, allowed map[string]bool) bool {
	if len(ids) == 0 {
		return false
	}
	for id := range ids {
		if !allowed[id] {
			return false
		}
	}
	return true
}

func hasHint(hints []string, name string) bool {
	for _, h := range hints {
		if h == name {
			return true
		}
	}
	return false
}

// asPushablePredicate recognizes `column OP literal` (PredicateRewrite has
// already canonicalized away `literal OP column`) where column belongs to
// scan's own schema and OP/type are accepted by pp.
func asPushablePredicate(cond *expression.Node, scan *plan.Node, pp sql.PredicatePushable) (sql.Predicate, bool) {
	if cond.NodeType != expression.ComparisonOperator {
		return sql.Predicate{}, false
	}
	if cond.Left.NodeType != expression.Identifier || !cond.Right.NodeType.IsLiteral() {
		return sql.Predicate{}, false
	}
	if !cond.Left.Bound() || scan.ScanSchema == nil {
		return sql.Predicate{}, false
	}
	if _, ok := scan.ScanSchema.FindByIdentity(cond.Left.Identity()); !ok {
		return sql.Predicate{}, false
	}
	if !sql.CanPushPredicate(pp, sql.Predicate{Op: cond.ComparisonOp}, cond.Left.Type()) {
		return sql.Predicate{}, false
	}
	return sql.Predicate{
		ColumnIdentity: cond.Left.Identity(),
		Column:         cond.Left.QueryColumn,
		Op:             cond.ComparisonOp,
		Value:          cond.Right.Value,
	}, true
}

// removeFilter splices a fully-pushed Filter node out of the tree.
func removeFilter(p *plan.Plan, n *plan.Node) {
	children := p.Children(n)
	if len(children) != 1 {
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
