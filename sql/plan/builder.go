package plan

import (
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sqlerr"
)

// BuildPlan lowers a parsed SQL statement into a LogicalPlan.
// Parsing SQL text into sqlparser.Statement happens one level up: callers
// run StripTemporalClause then sqlparser.Parse themselves,
// the same two-step dolthub/go-mysql-server's sql/planbuilder takes (parse, then
// bind) reconstructed from sql/planbuilder/parse_test.go. temporal is the
// date range StripTemporalClause returned; it is applied to every Scan
// node the statement reads.
func BuildPlan(stmt sqlparser.Statement, temporal TemporalRange) (*Plan, error) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return buildSelect(s, temporal)
	case *sqlparser.Set:
		return buildSet(s)
	case *sqlparser.Show:
		return buildShow(s)
	case *sqlparser.Explain:
		inner, err := BuildPlan(s.Statement, temporal)
		if err != nil {
			return nil, err
		}
		p := NewPlan()
		n := p.NewNode(ExplainKind)
		n.ExplainTarget = inner
		p.SetRoot(n)
		return p, nil
	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New(sqlparser.String(stmt))
	}
}

func buildSet(s *sqlparser.Set) (*Plan, error) {
	if len(s.Exprs) != 1 {
		return nil, sqlerr.ErrUnsupportedSyntax.New("multi-variable SET")
	}
	p := NewPlan()
	n := p.NewNode(SetKind)
	n.SetName = s.Exprs[0].Name.Lowered()
	val, err := lowerExpr(s.Exprs[0].Expr)
	if err != nil {
		return nil, err
	}
	n.SetValue = val
	p.SetRoot(n)
	return p, nil
}

func buildShow(s *sqlparser.Show) (*Plan, error) {
	p := NewPlan()
	switch strings.ToUpper(s.Type) {
	case "COLUMNS", "FIELDS":
		n := p.NewNode(ShowColumnsKind)
		n.ShowRelation = s.OnTable.Name.String()
		p.SetRoot(n)
		return p, nil
	case "VARIABLES", "SESSION VARIABLES":
		n := p.NewNode(ShowVariableKind)
		n.ShowName = s.Scope
		p.SetRoot(n)
		return p, nil
	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New("SHOW " + s.Type)
	}
}

// buildSelect lowers a single (non-UNION) SELECT into the leaves-up chain
// describes: Scan(s)/Join -> Filter(WHERE) ->
// AggregateAndGroup -> Filter(HAVING) -> Project -> Distinct -> Order ->
// Offset -> Limit -> Exit.
func buildSelect(s *sqlparser.Select, temporal TemporalRange) (*Plan, error) {
	p := NewPlan()

	source, err := buildFrom(p, s.From, temporal)
	if err != nil {
		return nil, err
	}

	if s.Where != nil {
		cond, err := lowerExpr(s.Where.Expr)
		if err != nil {
			return nil, err
		}
		source = attachFilter(p, source, cond)
	}

	var groups []*expression.Node
	for _, g := range s.GroupBy {
		e, err := lowerExpr(g)
		if err != nil {
			return nil, err
		}
		groups = append(groups, e)
	}

	projectExprs, aggregates, err := lowerSelectExprs(s.SelectExprs)
	if err != nil {
		return nil, err
	}

	if len(groups) > 0 || len(aggregates) > 0 {
		agg := p.NewNode(AggregateKind)
		agg.Groups = groups
		agg.Aggregates = aggregates
		p.AddEdge(source, agg)
		source = agg
	}

	if s.Having != nil {
		cond, err := lowerExpr(s.Having.Expr)
		if err != nil {
			return nil, err
		}
		source = attachFilter(p, source, cond)
	}

	proj := p.NewNode(ProjectKind)
	proj.ProjectColumns = projectExprs
	p.AddEdge(source, proj)
	source = proj

	if s.Distinct != "" {
		dist := p.NewNode(DistinctKind)
		p.AddEdge(source, dist)
		source = dist
	}

	if len(s.OrderBy) > 0 {
		order := p.NewNode(OrderKind)
		for _, o := range s.OrderBy {
			e, err := lowerExpr(o.Expr)
			if err != nil {
				return nil, err
			}
			order.OrderBy = append(order.OrderBy, OrderKey{
				Expr:       e,
				Descending: strings.EqualFold(o.Direction, sqlparser.DescScr),
			})
		}
		p.AddEdge(source, order)
		source = order
	}

	if s.Limit != nil {
		if s.Limit.Offset != nil {
			off := p.NewNode(OffsetKind)
			n, err := literalInt(s.Limit.Offset)
			if err != nil {
				return nil, err
			}
			off.N = n
			p.AddEdge(source, off)
			source = off
		}
		if s.Limit.Rowcount != nil {
			lim := p.NewNode(LimitKind)
			n, err := literalInt(s.Limit.Rowcount)
			if err != nil {
				return nil, err
			}
			lim.N = n
			p.AddEdge(source, lim)
			source = lim
		}
	}

	exit := p.NewNode(ExitKind)
	exit.ExitColumns = projectExprs
	p.AddEdge(source, exit)
	p.SetRoot(exit)
	return p, nil
}

func attachFilter(p *Plan, source *Node, cond *expression.Node) *Node {
	f := p.NewNode(FilterKind)
	f.Condition = cond
	p.AddEdge(source, f)
	return f
}

func literalInt(e sqlparser.Expr) (int64, error) {
	v, ok := e.(*sqlparser.SQLVal)
	if !ok || v.Type != sqlparser.IntVal {
		return 0, sqlerr.ErrUnsupportedSyntax.New("non-constant LIMIT/OFFSET")
	}
	var n int64
	for _, c := range v.Val {
		n = n*10 + int64(c-'0')
	}
	return n, nil
}

// lowerSelectExprs splits SELECT list items into plain projection columns
// and AGGREGATOR expressions,
// expanding bare `*` and `t.*` into WILDCARD nodes the binder resolves
// against the relation schemas in scope.
func lowerSelectExprs(exprs sqlparser.SelectExprs) (proj []*expression.Node, aggregates []*expression.Node, err error) {
	for _, se := range exprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			source := ""
			if !e.TableName.IsEmpty() {
				source = e.TableName.Name.String()
			}
			proj = append(proj, expression.NewWildcard(source))
		case *sqlparser.AliasedExpr:
			node, err := lowerExpr(e.Expr)
			if err != nil {
				return nil, nil, err
			}
			if !e.As.IsEmpty() {
				node = node.WithAlias(e.As.String())
			}
			proj = append(proj, node)
			expression.Walk(node, func(n *expression.Node) bool {
				if n.NodeType == expression.Aggregator {
					aggregates = append(aggregates, n)
				}
				return true
			})
		default:
			return nil, nil, sqlerr.ErrUnsupportedSyntax.New("select expression")
		}
	}
	return proj, aggregates, nil
}
