package binder

import (
	"github.com/vectorsql/engine/internal/similartext"
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sqlerr"
)

// bindExpr resolves every IDENTIFIER/FUNCTION/AGGREGATOR node of e against
// ctx, attaching a SchemaColumn. WILDCARD
// nodes are not handled here: the caller (bindProject) expands them
// before binding.
func bindExpr(ctx *BindingContext, reg *functions.Registry, e *expression.Node) error {
	if e == nil {
		return nil
	}
	if e.Bound() {
		// Already resolved in an earlier (narrower) scope — e.g. an
		// AGGREGATOR shared between AggregateAndGroup.aggregates and the
		// enclosing Project.columns. Re-walking it against Project's
		// post-aggregation scope would wrongly try to re-resolve its
		// arguments, which are no longer visible there.
		return nil
	}
	switch e.NodeType {
	case expression.Identifier:
		col, origin, err := locateIdentifier(ctx, e.Source, e.SourceColumn)
		if err != nil {
			return err
		}
		c := col
		e.SchemaColumn = &c
		e.QueryColumn = col.Name
		if e.Source == "" {
			e.Source = origin
		}
		return nil

	case expression.Function, expression.Aggregator:
		for _, p := range e.Parameters {
			if err := bindExpr(ctx, reg, p); err != nil {
				return err
			}
		}
		sig, isAgg, ok := reg.Lookup(e.FunctionName)
		if !ok {
			suggestion := similartext.Find(reg.Names(), e.FunctionName)
			return sqlerr.ErrFunctionNotFound.New(e.FunctionName, suggestion)
		}
		if e.NodeType == expression.Aggregator && !isAgg {
			return sqlerr.ErrFunctionNotFound.New(e.FunctionName, "")
		}
		if !sig.AcceptsArity(len(e.Parameters)) {
			return sqlerr.ErrInvalidFunctionParameter.New(e.FunctionName, "wrong number of arguments")
		}
		resultType := sig.ReturnType
		if resultType == sql.Unknown && len(e.Parameters) > 0 {
			resultType = e.Parameters[0].Type()
		}
		e.SchemaColumn = &sql.Column{
			Identity: sql.NewColumnIdentity(),
			Name:     e.FunctionName,
			Type:     resultType,
		}
		e.QueryColumn = e.FunctionName
		return nil

	case expression.ComparisonOperator:
		if err := bindExpr(ctx, reg, e.Left); err != nil {
			return err
		}
		if err := bindExpr(ctx, reg, e.Right); err != nil {
			return err
		}
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Name: "", Type: sql.Boolean}
		return nil

	case expression.BinaryOperator:
		if err := bindExpr(ctx, reg, e.Left); err != nil {
			return err
		}
		if err := bindExpr(ctx, reg, e.Right); err != nil {
			return err
		}
		lt, rt := e.Left.Type(), e.Right.Type()
		if !numericType(lt) || !numericType(rt) {
			return sqlerr.ErrIncompatibleTypes.New(lt.String(), rt.String())
		}
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Name: "", Type: sql.Float64}
		return nil

	case expression.And, expression.Or, expression.Xor:
		if err := bindExpr(ctx, reg, e.Left); err != nil {
			return err
		}
		if err := bindExpr(ctx, reg, e.Right); err != nil {
			return err
		}
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Name: "", Type: sql.Boolean}
		return nil

	case expression.Not, expression.UnaryOperator:
		if err := bindExpr(ctx, reg, e.Centre); err != nil {
			return err
		}
		typ := sql.Boolean
		if e.NodeType == expression.UnaryOperator && e.UnaryOp == expression.Negate {
			typ = e.Centre.Type()
		}
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Name: "", Type: typ}
		return nil

	case expression.Nested:
		if err := bindExpr(ctx, reg, e.Centre); err != nil {
			return err
		}
		e.SchemaColumn = e.Centre.SchemaColumn
		e.QueryColumn = e.Centre.QueryColumn
		return nil

	case expression.LiteralBoolean:
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Boolean}
		return nil
	case expression.LiteralNumber:
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Float64}
		return nil
	case expression.LiteralString:
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Varchar}
		return nil
	case expression.LiteralNull:
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Null}
		return nil
	case expression.LiteralTimestamp:
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Timestamp}
		return nil
	case expression.LiteralList:
		for _, p := range e.Parameters {
			if err := bindExpr(ctx, reg, p); err != nil {
				return err
			}
		}
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.List}
		return nil

	case expression.Subquery:
		// The inner plan is bound separately by Bind on its own node; here
		// we only need a placeholder column identity for the outer
		// expression tree to reference.
		e.SchemaColumn = &sql.Column{Identity: sql.NewColumnIdentity(), Type: sql.Unknown}
		return nil

	default:
		return sqlerr.ErrInvalidInternalState.New("unbound expression node type")
	}
}

func numericType(t sql.Type) bool {
	return t == sql.Int64 || t == sql.Float64 || t == sql.Unknown
}
