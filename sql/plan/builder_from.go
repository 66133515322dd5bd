package plan

import (
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/vectorsql/engine/sqlerr"
)

// buildFrom lowers a FROM clause into a chain of Scan/FunctionDataset/Join
// nodes, returning the node whose output feeds the rest of the SELECT
// pipeline. Comma-joins in the FROM list become nested CrossJoin nodes,
// left-folded in list order.
func buildFrom(p *Plan, from sqlparser.TableExprs, temporal TemporalRange) (*Node, error) {
	if len(from) == 0 {
		return nil, sqlerr.ErrUnsupportedSyntax.New("SELECT without FROM")
	}
	var source *Node
	for _, te := range from {
		n, err := buildTableExpr(p, te, temporal)
		if err != nil {
			return nil, err
		}
		if source == nil {
			source = n
			continue
		}
		j := p.NewNode(JoinKind)
		j.JoinType = CrossJoin
		p.AddEdge(source, j)
		p.AddEdge(n, j)
		source = j
	}
	return source, nil
}

func buildTableExpr(p *Plan, te sqlparser.TableExpr, temporal TemporalRange) (*Node, error) {
	switch t := te.(type) {
	case *sqlparser.AliasedTableExpr:
		return buildAliasedTable(p, t, temporal)
	case *sqlparser.JoinTableExpr:
		return buildJoin(p, t, temporal)
	case *sqlparser.ParenTableExpr:
		return buildFrom(p, t.Exprs, temporal)
	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New("FROM expression")
	}
}

func buildAliasedTable(p *Plan, t *sqlparser.AliasedTableExpr, temporal TemporalRange) (*Node, error) {
	alias := t.As.String()
	hints := aliasedTableHints(t)

	switch inner := t.Expr.(type) {
	case sqlparser.TableName:
		name := inner.Name.String()
		if unknown := ValidateHints(hints); len(unknown) > 0 {
			for h, suggestion := range unknown {
				return nil, sqlerr.ErrUnsupportedSyntax.New("unknown hint " + h + suggestion)
			}
		}
		if fn, ok := functionDatasetName(name); ok {
			n := p.NewNode(FunctionDatasetKind)
			n.FunctionName = fn
			n.Alias = alias
			return n, nil
		}
		n := p.NewNode(ScanKind)
		n.Relation = name
		n.Alias = alias
		n.Hints = hints
		n.StartDate = temporal.Start
		n.EndDate = temporal.End
		return n, nil
	case *sqlparser.Subquery:
		if alias == "" {
			return nil, sqlerr.ErrUnnamedSubquery.New()
		}
		sub, err := BuildPlan(inner.Select, temporal)
		if err != nil {
			return nil, err
		}
		n := p.NewNode(SubqueryKind)
		n.Alias = alias
		n.ExplainTarget = sub
		return n, nil
	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New("FROM source")
	}
}

// functionDatasetName recognizes the built-in table-valued functions
// (VALUES/UNNEST/GENERATE_SERIES/FAKE) names; vitess parses
// these as an ordinary table name when written bare, e.g. `FROM FAKE(10)`.
func functionDatasetName(name string) (string, bool) {
	switch strings.ToUpper(name) {
	case ValuesFunction, UnnestFunction, GenerateSeriesFunction, FakeFunction:
		return strings.ToUpper(name), true
	default:
		return "", false
	}
}

func aliasedTableHints(t *sqlparser.AliasedTableExpr) []string {
	if t.Hints == nil {
		return nil
	}
	// vitess renders index hints back to text; table hints in this dialect
	// are a 1:1 name list so the text form (minus the USE INDEX wrapper) is
	// the hint list itself.
	raw := sqlparser.String(t.Hints)
	raw = strings.TrimPrefix(raw, " USE INDEX (")
	raw = strings.TrimSuffix(raw, ")")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.ToUpper(strings.TrimSpace(part)))
	}
	return out
}

func buildJoin(p *Plan, t *sqlparser.JoinTableExpr, temporal TemporalRange) (*Node, error) {
	left, err := buildTableExpr(p, t.LeftExpr, temporal)
	if err != nil {
		return nil, err
	}
	right, err := buildTableExpr(p, t.RightExpr, temporal)
	if err != nil {
		return nil, err
	}

	j := p.NewNode(JoinKind)
	j.JoinType = joinTypeOf(t.Join)

	if t.Condition.On != nil {
		on, err := lowerExpr(t.Condition.On)
		if err != nil {
			return nil, err
		}
		j.On = on
	}
	for _, col := range t.Condition.Using {
		j.Using = append(j.Using, col.String())
	}

	p.AddEdge(left, j)
	p.AddEdge(right, j)
	return j, nil
}

func joinTypeOf(join string) JoinType {
	switch strings.ToLower(join) {
	case sqlparser.LeftJoinStr:
		return LeftOuterJoin
	case sqlparser.RightJoinStr:
		return RightOuterJoin
	case sqlparser.NaturalJoinStr:
		return NaturalJoin
	case sqlparser.NaturalLeftJoinStr:
		return NaturalJoin
	case sqlparser.NaturalRightJoinStr:
		return NaturalJoin
	case sqlparser.JoinStr, sqlparser.StraightJoinStr:
		return InnerJoin
	default:
		return InnerJoin
	}
}
