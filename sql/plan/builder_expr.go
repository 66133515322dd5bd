package plan

import (
	"strconv"
	"strings"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sqlerr"
)

// lowerExpr translates one vitess expression AST node into an unbound
// sql/expression.Node, per AST->expression lowering table.
// The binder resolves IDENTIFIER/FUNCTION nodes and attaches SchemaColumn
// afterwards; lowerExpr itself never touches a schema.
func lowerExpr(e sqlparser.Expr) (*expression.Node, error) {
	switch v := e.(type) {
	case *sqlparser.ColName:
		source := ""
		if !v.Qualifier.IsEmpty() {
			source = v.Qualifier.Name.String()
		}
		return expression.NewIdentifier(source, v.Name.String()), nil

	case *sqlparser.SQLVal:
		return lowerSQLVal(v)

	case sqlparser.BoolVal:
		return expression.NewLiteralBoolean(bool(v)), nil

	case *sqlparser.NullVal:
		return expression.NewLiteralNull(), nil

	case *sqlparser.AndExpr:
		l, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewAnd(l, r), nil

	case *sqlparser.OrExpr:
		l, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewOr(l, r), nil

	case *sqlparser.XorExpr:
		l, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewXor(l, r), nil

	case *sqlparser.NotExpr:
		inner, err := lowerExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(inner), nil

	case *sqlparser.ParenExpr:
		inner, err := lowerExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewNested(inner), nil

	case *sqlparser.ComparisonExpr:
		return lowerComparison(v)

	case *sqlparser.RangeCond:
		return lowerBetween(v)

	case *sqlparser.IsExpr:
		return lowerIs(v)

	case *sqlparser.BinaryExpr:
		l, err := lowerExpr(v.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		op, ok := arithOpOf(v.Operator)
		if !ok {
			return nil, sqlerr.ErrUnsupportedSyntax.New("operator " + v.Operator)
		}
		return expression.NewBinary(op, l, r), nil

	case *sqlparser.UnaryExpr:
		return lowerUnaryMinus(v)

	case *sqlparser.FuncExpr:
		return lowerFunc(v)

	case *sqlparser.ConvertExpr:
		return lowerConvert(v)

	case *sqlparser.Subquery:
		inner, err := BuildPlan(v.Select, TemporalRange{})
		if err != nil {
			return nil, err
		}
		return expression.NewSubquery(inner), nil

	case *sqlparser.ExistsExpr:
		inner, err := BuildPlan(v.Subquery.Select, TemporalRange{})
		if err != nil {
			return nil, err
		}
		return expression.NewFunction("EXISTS", expression.NewSubquery(inner)), nil

	case *sqlparser.ValTuple:
		items := make([]*expression.Node, 0, len(v))
		for _, item := range v {
			n, err := lowerExpr(item)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		return expression.NewLiteralList(items...), nil

	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New(sqlparser.String(e))
	}
}

func lowerSQLVal(v *sqlparser.SQLVal) (*expression.Node, error) {
	switch v.Type {
	case sqlparser.StrVal:
		return expression.NewLiteralString(string(v.Val)), nil
	case sqlparser.IntVal, sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, sqlerr.ErrUnsupportedSyntax.New("malformed numeric literal " + string(v.Val))
		}
		return expression.NewLiteralNumber(f), nil
	case sqlparser.ValArg:
		return nil, sqlerr.ErrUnsupportedSyntax.New("bind variables")
	default:
		return expression.NewLiteralString(string(v.Val)), nil
	}
}

func lowerComparison(v *sqlparser.ComparisonExpr) (*expression.Node, error) {
	left, err := lowerExpr(v.Left)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(v.Operator) {
	case sqlparser.InStr, sqlparser.NotInStr:
		right, err := lowerExpr(v.Right)
		if err != nil {
			return nil, err
		}
		op := sql.In
		if strings.ToLower(v.Operator) == sqlparser.NotInStr {
			op = sql.NotIn
		}
		return expression.NewComparison(op, left, right), nil
	}

	right, err := lowerExpr(v.Right)
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOpOf(v.Operator)
	if !ok {
		return nil, sqlerr.ErrUnsupportedSyntax.New("operator " + v.Operator)
	}
	return expression.NewComparison(op, left, right), nil
}

func lowerBetween(v *sqlparser.RangeCond) (*expression.Node, error) {
	target, err := lowerExpr(v.Left)
	if err != nil {
		return nil, err
	}
	from, err := lowerExpr(v.From)
	if err != nil {
		return nil, err
	}
	to, err := lowerExpr(v.To)
	if err != nil {
		return nil, err
	}
	lo := expression.NewComparison(sql.GtEq, target, from)
	hi := expression.NewComparison(sql.LtEq, target, to)
	cond := expression.NewAnd(lo, hi)
	if strings.EqualFold(v.Operator, "not between") {
		return expression.NewNot(cond), nil
	}
	return cond, nil
}

func lowerIs(v *sqlparser.IsExpr) (*expression.Node, error) {
	operand, err := lowerExpr(v.Expr)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(v.Operator) {
	case sqlparser.IsNullStr:
		return expression.NewUnary(expression.IsNull, operand), nil
	case sqlparser.IsNotNullStr:
		return expression.NewUnary(expression.IsNotNull, operand), nil
	case sqlparser.IsTrueStr:
		return expression.NewUnary(expression.IsTrue, operand), nil
	case sqlparser.IsNotTrueStr:
		return expression.NewUnary(expression.IsNotTrue, operand), nil
	case sqlparser.IsFalseStr:
		return expression.NewUnary(expression.IsFalse, operand), nil
	case sqlparser.IsNotFalseStr:
		return expression.NewUnary(expression.IsNotFalse, operand), nil
	default:
		return nil, sqlerr.ErrUnsupportedSyntax.New("IS " + v.Operator)
	}
}

func lowerUnaryMinus(v *sqlparser.UnaryExpr) (*expression.Node, error) {
	operand, err := lowerExpr(v.Expr)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(v.Operator) != "-" {
		return nil, sqlerr.ErrUnsupportedSyntax.New("unary operator " + v.Operator)
	}
	return expression.NewUnary(expression.Negate, operand), nil
}

func lowerFunc(v *sqlparser.FuncExpr) (*expression.Node, error) {
	name := v.Name.String()
	args := make([]*expression.Node, 0, len(v.Exprs))
	for _, se := range v.Exprs {
		switch a := se.(type) {
		case *sqlparser.AliasedExpr:
			n, err := lowerExpr(a.Expr)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		case *sqlparser.StarExpr:
			args = append(args, expression.NewWildcard(""))
		}
	}
	if isAggregateName(name) {
		return expression.NewAggregator(strings.ToUpper(name), args...), nil
	}
	return expression.NewFunction(strings.ToUpper(name), args...), nil
}

func lowerConvert(v *sqlparser.ConvertExpr) (*expression.Node, error) {
	inner, err := lowerExpr(v.Expr)
	if err != nil {
		return nil, err
	}
	typeName := "VARCHAR"
	if v.Type != nil {
		typeName = strings.ToUpper(v.Type.Type)
	}
	return expression.NewFunction(typeName, inner), nil
}

// isAggregateName is a conservative allowlist rather than a registry
// lookup: sql/plan does not depend on sql/functions to avoid an import
// cycle, so it only needs to know which FUNCTION-shaped AST nodes to lower
// as AGGREGATOR nodes.
func isAggregateName(name string) bool {
	switch strings.ToUpper(name) {
	case "COUNT", "COUNT_DISTINCT", "SUM", "PRODUCT", "MIN", "MAX", "MIN_MAX",
		"MEAN", "AVG", "AVERAGE", "VARIANCE", "STDDEV", "LIST", "DISTINCT",
		"ANY", "ALL", "APPROX_MEDIAN", "QUANTILES":
		return true
	default:
		return false
	}
}

func arithOpOf(op string) (expression.ArithOp, bool) {
	switch strings.TrimSpace(op) {
	case "+":
		return expression.Add, true
	case "-":
		return expression.Subtract, true
	case "*":
		return expression.Multiply, true
	case "/":
		return expression.Divide, true
	case "%":
		return expression.Modulo, true
	default:
		return 0, false
	}
}

func comparisonOpOf(op string) (sql.ComparisonOp, bool) {
	switch strings.ToLower(op) {
	case sqlparser.EqualStr:
		return sql.Eq, true
	case sqlparser.NotEqualStr:
		return sql.NotEq, true
	case sqlparser.LessThanStr:
		return sql.Lt, true
	case sqlparser.LessEqualStr:
		return sql.LtEq, true
	case sqlparser.GreaterThanStr:
		return sql.Gt, true
	case sqlparser.GreaterEqualStr:
		return sql.GtEq, true
	case sqlparser.LikeStr:
		return sql.Like, true
	case sqlparser.NotLikeStr:
		return sql.NotLike, true
	default:
		return 0, false
	}
}
