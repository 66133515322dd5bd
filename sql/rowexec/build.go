package rowexec

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/plan"
	"github.com/vectorsql/engine/sqlerr"
)

// Build lowers a bound, optimized LogicalPlan into the pull-based operator tree rooted at p.Root(),
// recursing leaves-up the same shape the plan graph already has. Only the
// row-producing node kinds are handled here; statement-level kinds
// (SET/SHOW/EXPLAIN) are dispatched directly by the engine, not through
// this tree. pageSize is the target morsel size in bytes every Scan's
// ConsolidateOperator re-batches toward.
func Build(ctx *sql.Context, p *plan.Plan, ev *eval.Evaluator, pageSize int64) (sql.MorselIterator, error) {
	root := p.Root()
	if root == nil {
		return nil, sqlerr.ErrInvalidInternalState.New("plan has no root")
	}
	return buildNode(ctx, p, root, ev, pageSize)
}

func buildNode(ctx *sql.Context, p *plan.Plan, n *plan.Node, ev *eval.Evaluator, pageSize int64) (sql.MorselIterator, error) {
	switch n.Kind {
	case plan.ScanKind:
		return NewScan(ctx, n.Connector, sql.ReadOptions{
			Columns:    n.ScanColumns,
			Predicates: n.Predicates,
			StartDate:  n.StartDate,
			EndDate:    n.EndDate,
		}, pageSize)

	case plan.FunctionDatasetKind:
		return NewFunctionDataset(n)

	case plan.SubqueryKind:
		return Build(ctx, n.ExplainTarget, ev, pageSize)

	case plan.FilterKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewFilter(source, n.Condition, ev), nil

	case plan.JoinKind:
		children := p.Children(n)
		if len(children) != 2 {
			return nil, sqlerr.ErrInvalidInternalState.New("join node without two children")
		}
		// The left child is the probe side and the right child the build
		// side, so LEFT OUTER/SEMI/ANTI keep left rows and RIGHT OUTER keeps
		// right rows.
		build, err := buildNode(ctx, p, children[1], ev, pageSize)
		if err != nil {
			return nil, err
		}
		probe, err := buildNode(ctx, p, children[0], ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewJoin(build, probe, n.JoinType, n.On, joinSchema(n), ev), nil

	case plan.AggregateKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewAggregate(source, n.Groups, n.Aggregates, n.OutputSchemas[sql.DerivedSchema], ev), nil

	case plan.DistinctKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewDistinct(source), nil

	case plan.ProjectKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewProject(source, n.ProjectColumns, n.OutputSchemas[sql.ProjectSchema], ev), nil

	case plan.OrderKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewSort(source, n.OrderBy, ev), nil

	case plan.OffsetKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewOffset(source, n.N), nil

	case plan.LimitKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewLimit(source, n.N), nil

	case plan.ExitKind:
		source, err := buildChild(ctx, p, n, ev, pageSize)
		if err != nil {
			return nil, err
		}
		return NewProject(source, n.ExitColumns, p.ExitSchema(), ev), nil

	default:
		return nil, sqlerr.ErrInvalidInternalState.New("plan node kind has no row-producing operator")
	}
}

func buildChild(ctx *sql.Context, p *plan.Plan, n *plan.Node, ev *eval.Evaluator, pageSize int64) (sql.MorselIterator, error) {
	children := p.Children(n)
	if len(children) != 1 {
		return nil, sqlerr.ErrInvalidInternalState.New("node expects exactly one child")
	}
	return buildNode(ctx, p, children[0], ev, pageSize)
}

// joinSchema merges every schema the binder attached to n (one per
// relation/alias visible at that point) into a single descriptive schema
// for the produced Morsel. Column lookups downstream go through
// Morsel.ByIdentity, never this schema's column order, so an exact
// left-then-right ordering isn't required for correctness.
func joinSchema(n *plan.Node) *sql.RelationSchema {
	out := sql.NewRelationSchema(sql.SharedSchemaTag + "join")
	seen := make(map[string]bool)
	for _, s := range n.OutputSchemas {
		for _, c := range s.Columns {
			if seen[c.Identity] {
				continue
			}
			seen[c.Identity] = true
			out.Append(c)
		}
	}
	return out
}
