package binder

import (
	"strings"

	"github.com/vectorsql/engine/internal/similartext"
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sql/plan"
	"github.com/vectorsql/engine/sqlerr"
)

// Binder carries the shared, read-only state a single Bind pass consults:
// the function registry and the catalog used to resolve Scan relations and
// FunctionDataset schemas. It holds no per-query mutable state itself —
// that lives in the BindingContext threaded through the walk.
type Binder struct {
	Catalog   sql.Catalog
	Functions *functions.Registry
}

// New returns a Binder over catalog, with a fresh default function
// registry.
func New(catalog sql.Catalog) *Binder {
	return &Binder{Catalog: catalog, Functions: functions.NewRegistry()}
}

// Bind walks p post-order, resolving every node's output
// schema and every expression's column identity in place. It returns the
// root node's output schema for convenience.
func (b *Binder) Bind(p *plan.Plan) (*sql.RelationSchema, error) {
	root := p.Root()
	if root == nil {
		return nil, sqlerr.ErrInvalidInternalState.New("plan has no root")
	}
	ctx, err := b.bindNode(p, root)
	if err != nil {
		return nil, err
	}
	_ = ctx
	return p.ExitSchema(), nil
}

// bindNode binds n and everything beneath it, returning the BindingContext
// visible immediately above n.
func (b *Binder) bindNode(p *plan.Plan, n *plan.Node) (*BindingContext, error) {
	children := p.Children(n)
	childCtxs := make([]*BindingContext, len(children))
	for i, c := range children {
		cc, err := b.bindNode(p, c)
		if err != nil {
			return nil, err
		}
		childCtxs[i] = cc
	}

	merged := NewBindingContext()
	for _, cc := range childCtxs {
		merged.Merge(cc)
	}

	out, err := b.bindThis(n, merged, children, childCtxs)
	if err != nil {
		return nil, err
	}
	if n.OutputSchemas == nil {
		n.OutputSchemas = make(map[string]*sql.RelationSchema)
	}
	for name, schema := range out.AllSchemas() {
		n.OutputSchemas[name] = schema
	}
	return out, nil
}

// bindThis dispatches on n.Kind, updating the merged child scope into the
// scope n exposes to its parent.
func (b *Binder) bindThis(n *plan.Node, ctx *BindingContext, children []*plan.Node, childCtxs []*BindingContext) (*BindingContext, error) {
	switch n.Kind {
	case plan.ScanKind:
		return b.bindScan(n)
	case plan.FunctionDatasetKind:
		return b.bindFunctionDataset(n)
	case plan.SubqueryKind:
		return b.bindSubquery(n)
	case plan.JoinKind:
		return b.bindJoin(n, ctx, children, childCtxs)
	case plan.FilterKind:
		if err := bindExpr(ctx, b.Functions, n.Condition); err != nil {
			return nil, err
		}
		n.Relations = ctx.Relations()
		return ctx, nil
	case plan.AggregateKind:
		for _, g := range n.Groups {
			if err := bindExpr(ctx, b.Functions, g); err != nil {
				return nil, err
			}
		}
		for _, a := range n.Aggregates {
			if err := bindExpr(ctx, b.Functions, a); err != nil {
				return nil, err
			}
		}
		derived := sql.NewRelationSchema(sql.DerivedSchema)
		for _, g := range n.Groups {
			derived.Append(*g.SchemaColumn)
		}
		for _, a := range n.Aggregates {
			derived.Append(*a.SchemaColumn)
		}
		out := NewBindingContext()
		out.AddSchema(sql.DerivedSchema, derived)
		return out, nil
	case plan.DistinctKind:
		for _, e := range n.DistinctOn {
			if err := bindExpr(ctx, b.Functions, e); err != nil {
				return nil, err
			}
		}
		return ctx, nil
	case plan.ProjectKind:
		return b.bindProject(n, ctx)
	case plan.OrderKind:
		for _, k := range n.OrderBy {
			if err := bindExpr(ctx, b.Functions, k.Expr); err != nil {
				return nil, err
			}
		}
		return ctx, nil
	case plan.OffsetKind, plan.LimitKind:
		return ctx, nil
	case plan.ExitKind:
		for _, e := range n.ExitColumns {
			if err := bindExpr(ctx, b.Functions, e); err != nil {
				return nil, err
			}
		}
		return ctx, nil
	case plan.SetKind:
		if err := bindExpr(ctx, b.Functions, n.SetValue); err != nil {
			return nil, err
		}
		return ctx, nil
	case plan.ShowColumnsKind, plan.ShowVariableKind:
		return ctx, nil
	case plan.ExplainKind:
		if n.ExplainTarget != nil {
			if _, err := b.Bind(n.ExplainTarget); err != nil {
				return nil, err
			}
		}
		return ctx, nil
	default:
		return nil, sqlerr.ErrInvalidInternalState.New("unhandled plan node kind")
	}
}

func (b *Binder) bindScan(n *plan.Node) (*BindingContext, error) {
	conn, err := b.Catalog.Relation(n.Relation)
	if err != nil {
		suggestion := similartext.Find(b.Catalog.RelationNames(), n.Relation)
		return nil, sqlerr.ErrDatasetNotFound.New(n.Relation, suggestion)
	}
	n.Connector = conn
	schema, err := conn.GetDatasetSchema()
	if err != nil {
		return nil, err
	}
	n.ScanSchema = schema

	name := n.Alias
	if name == "" {
		name = n.Relation
	}
	ctx := NewBindingContext()
	ctx.AddSchema(name, schema)
	return ctx, nil
}

func (b *Binder) bindFunctionDataset(n *plan.Node) (*BindingContext, error) {
	for _, a := range n.FunctionArgs {
		if err := bindExpr(NewBindingContext(), b.Functions, a); err != nil {
			return nil, err
		}
	}
	schema := sql.NewRelationSchema(sql.DerivedSchema)
	switch n.FunctionName {
	case plan.FakeFunction:
		schema.Append(sql.NewFlatColumn("NAME", sql.Varchar, sql.DerivedSchema).WithOrigin(sql.DerivedSchema))
		schema.Append(sql.NewFlatColumn("AGE", sql.Int64, sql.DerivedSchema).WithOrigin(sql.DerivedSchema))
	default:
		schema.Append(sql.NewFlatColumn("VALUE", sql.Unknown, sql.DerivedSchema).WithOrigin(sql.DerivedSchema))
	}
	n.ScanSchema = schema

	name := n.Alias
	if name == "" {
		name = n.FunctionName
	}
	ctx := NewBindingContext()
	ctx.AddSchema(name, schema)
	return ctx, nil
}

func (b *Binder) bindSubquery(n *plan.Node) (*BindingContext, error) {
	if n.ExplainTarget == nil {
		return nil, sqlerr.ErrInvalidInternalState.New("subquery has no inner plan")
	}
	innerSchema, err := b.Bind(n.ExplainTarget)
	if err != nil {
		return nil, err
	}
	renamed := &sql.RelationSchema{Name: n.Alias, Columns: innerSchema.Columns}
	n.ScanSchema = renamed
	ctx := NewBindingContext()
	ctx.AddSchema(n.Alias, renamed)
	return ctx, nil
}

// bindJoin resolves ON/USING and, for SEMI/ANTI joins, restricts the
// schema exposed upward to the preserved side's columns only.
func (b *Binder) bindJoin(n *plan.Node, ctx *BindingContext, children []*plan.Node, childCtxs []*BindingContext) (*BindingContext, error) {
	if len(childCtxs) != 2 {
		return nil, sqlerr.ErrInvalidInternalState.New("join requires exactly two children")
	}
	leftCtx, rightCtx := childCtxs[0], childCtxs[1]
	n.LeftRelationNames = leftCtx.Relations()
	n.RightRelationNames = rightCtx.Relations()

	switch n.JoinType {
	case plan.LeftSemiJoin, plan.LeftAntiJoin:
		if n.On != nil {
			if err := bindExpr(ctx, b.Functions, n.On); err != nil {
				return nil, err
			}
		}
		return leftCtx, nil
	case plan.RightSemiJoin, plan.RightAntiJoin:
		if n.On != nil {
			if err := bindExpr(ctx, b.Functions, n.On); err != nil {
				return nil, err
			}
		}
		return rightCtx, nil
	case plan.NaturalJoin:
		return bindNaturalJoin(leftCtx, rightCtx)
	}

	if len(n.Using) > 0 {
		return bindUsingJoin(leftCtx, rightCtx, n.Using)
	}
	if n.On != nil {
		if err := bindExpr(ctx, b.Functions, n.On); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// bindNaturalJoin merges same-named columns from both sides into a single
// `$shared-<rand>` schema.
func bindNaturalJoin(left, right *BindingContext) (*BindingContext, error) {
	common := commonColumnNames(left, right)
	return mergeUsing(left, right, common)
}

func bindUsingJoin(left, right *BindingContext, using []string) (*BindingContext, error) {
	return mergeUsing(left, right, using)
}

func commonColumnNames(left, right *BindingContext) []string {
	leftNames := map[string]bool{}
	for _, n := range left.AllColumnNames() {
		leftNames[strings.ToLower(n)] = true
	}
	var common []string
	for _, n := range right.AllColumnNames() {
		if leftNames[strings.ToLower(n)] {
			common = append(common, n)
		}
	}
	return common
}

func mergeUsing(left, right *BindingContext, using []string) (*BindingContext, error) {
	shared := sql.NewSyntheticSchemaName(sql.SharedSchemaTag)
	schema := sql.NewRelationSchema(shared)

	usingSet := map[string]bool{}
	for _, u := range using {
		usingSet[strings.ToLower(u)] = true
	}

	added := map[string]bool{}
	for _, rel := range append(left.Relations(), right.Relations()...) {
		s, ok := left.Schema(rel)
		if !ok {
			s, _ = right.Schema(rel)
		}
		for _, c := range s.Columns {
			key := strings.ToLower(c.Name)
			if usingSet[key] && added[key] {
				continue
			}
			schema.Append(c)
			if usingSet[key] {
				added[key] = true
			}
		}
	}

	out := NewBindingContext()
	out.Merge(left)
	out.Merge(right)
	out.AddSchema(shared, schema)
	return out, nil
}

// bindProject expands WILDCARD nodes against the relations in scope and
// binds everything else normally.
func (b *Binder) bindProject(n *plan.Node, ctx *BindingContext) (*BindingContext, error) {
	var expanded []*expression.Node
	for _, col := range n.ProjectColumns {
		if col.NodeType != expression.Wildcard {
			if err := bindExpr(ctx, b.Functions, col); err != nil {
				return nil, err
			}
			expanded = append(expanded, col)
			continue
		}
		cols, err := expandWildcard(ctx, col.Source)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, cols...)
	}
	n.ProjectColumns = expanded

	schema := sql.NewRelationSchema(sql.ProjectSchema)
	for _, e := range expanded {
		name := e.QueryColumn
		if e.Alias != "" {
			name = e.Alias
		}
		schema.Append(sql.Column{Identity: e.Identity(), Name: name, Type: e.Type()})
	}
	out := NewBindingContext()
	out.AddSchema(sql.ProjectSchema, schema)
	return out, nil
}

func expandWildcard(ctx *BindingContext, source string) ([]*expression.Node, error) {
	var relations []string
	if source != "" {
		if _, ok := ctx.Schema(source); !ok {
			suggestion := similartext.Find(ctx.Relations(), source)
			return nil, sqlerr.ErrDatasetNotFound.New(source, suggestion)
		}
		relations = []string{source}
	} else {
		relations = ctx.Relations()
	}

	var out []*expression.Node
	for _, rel := range relations {
		schema, _ := ctx.Schema(rel)
		for _, c := range schema.Columns {
			ident := expression.NewIdentifier(rel, c.Name)
			col := c
			ident.SchemaColumn = &col
			ident.QueryColumn = c.Name
			out = append(out, ident)
		}
	}
	return out, nil
}
