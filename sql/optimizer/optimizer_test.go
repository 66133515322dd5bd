package optimizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

func TestBooleanSimplificationCollapsesAndTrue(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	f := p.NewNode(plan.FilterKind)
	f.Condition = expression.NewAnd(expression.NewLiteralBoolean(true), expression.NewLiteralBoolean(false))
	p.SetRoot(f)

	require.NoError(BooleanSimplification(p))
	require.Equal(expression.LiteralBoolean, f.Condition.NodeType)
	require.Equal(false, f.Condition.Value)
}

func TestSplitConjunctivePredicatesProducesChain(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	f := p.NewNode(plan.FilterKind)
	a := expression.NewComparison(sql.Gt, expression.NewLiteralNumber(1), expression.NewLiteralNumber(2))
	b := expression.NewComparison(sql.Lt, expression.NewLiteralNumber(3), expression.NewLiteralNumber(4))
	f.Condition = expression.NewAnd(a, b)
	p.AddEdge(scan, f)
	p.SetRoot(f)

	require.NoError(SplitConjunctivePredicates(p))

	var kinds []plan.Kind
	p.Walk(func(n *plan.Node) { kinds = append(kinds, n.Kind) })
	require.Equal([]plan.Kind{plan.ScanKind, plan.FilterKind, plan.FilterKind}, kinds)
}

func TestConstantFoldingEvaluatesLiteralArithmetic(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	f := p.NewNode(plan.FilterKind)
	add := expression.NewBinary(expression.Add, expression.NewLiteralNumber(2), expression.NewLiteralNumber(3))
	f.Condition = expression.NewComparison(sql.Eq, add, expression.NewLiteralNumber(5))
	p.SetRoot(f)

	require.NoError(ConstantFolding(p))
	require.Equal(expression.LiteralBoolean, f.Condition.NodeType)
	require.Equal(true, f.Condition.Value)
}

func TestPredicateRewriteNormalizesLiteralFirstComparison(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	f := p.NewNode(plan.FilterKind)
	col := sql.NewFlatColumn("id", sql.Int64, "t")
	ident := expression.NewIdentifier("t", "id")
	c := col.Column
	ident.SchemaColumn = &c
	f.Condition = expression.NewComparison(sql.Gt, expression.NewLiteralNumber(5), ident)
	p.SetRoot(f)

	require.NoError(PredicateRewrite(p))
	require.Equal(expression.Identifier, f.Condition.Left.NodeType)
	require.Equal(sql.Lt, f.Condition.ComparisonOp)
}

type pushableConnector struct{ schema *sql.RelationSchema }

func (c *pushableConnector) GetDatasetSchema() (*sql.RelationSchema, error) { return c.schema, nil }
func (c *pushableConnector) ReadDataset(ctx *sql.Context, opts sql.ReadOptions) (sql.MorselIterator, error) {
	return nil, nil
}
func (c *pushableConnector) PushableOps() []sql.ComparisonOp {
	return []sql.ComparisonOp{sql.Eq, sql.Gt, sql.GtEq, sql.Lt, sql.LtEq, sql.NotEq}
}
func (c *pushableConnector) PushableTypes() []sql.Type { return []sql.Type{sql.Int64, sql.Varchar} }

func TestPredicatePushdownMovesConditionIntoScan(t *testing.T) {
	require := require.New(t)
	col := sql.NewFlatColumn("id", sql.Int64, "planets")
	schema := sql.NewRelationSchema("planets").Append(col.Column)
	conn := &pushableConnector{schema: schema}

	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	scan.Relation = "planets"
	scan.Connector = conn
	scan.ScanSchema = schema

	f := p.NewNode(plan.FilterKind)
	ident := expression.NewIdentifier("planets", "id")
	c := col.Column
	ident.SchemaColumn = &c
	f.Condition = expression.NewComparison(sql.Gt, ident, expression.NewLiteralNumber(4))
	p.AddEdge(scan, f)
	p.SetRoot(f)

	require.NoError(PredicatePushdown(p))

	require.Equal(scan, p.Root())
	require.Len(scan.Predicates, 1)
	require.Equal(sql.Gt, scan.Predicates[0].Op)
	require.Equal(col.Identity, scan.Predicates[0].ColumnIdentity)
}

func TestProjectionPushdownNarrowsScanColumns(t *testing.T) {
	require := require.New(t)
	idCol := sql.NewFlatColumn("id", sql.Int64, "t")
	nameCol := sql.NewFlatColumn("name", sql.Varchar, "t")
	schema := sql.NewRelationSchema("t").Append(idCol.Column).Append(nameCol.Column)

	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	scan.ScanSchema = schema

	exit := p.NewNode(plan.ExitKind)
	ident := expression.NewIdentifier("t", "name")
	c := nameCol.Column
	ident.SchemaColumn = &c
	exit.ExitColumns = []*expression.Node{ident}
	p.AddEdge(scan, exit)
	p.SetRoot(exit)

	require.NoError(ProjectionPushdown(p))
	require.Equal([]string{"name"}, scan.ScanColumns)
}

func TestRedundantOperationsDropsAlwaysTrueFilter(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	f := p.NewNode(plan.FilterKind)
	f.Condition = expression.NewLiteralBoolean(true)
	p.AddEdge(scan, f)
	p.SetRoot(f)

	require.NoError(RedundantOperations(p))
	require.Equal(scan, p.Root())
}

func TestOperatorFusionMergesAdjacentFilters(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	inner := p.NewNode(plan.FilterKind)
	inner.Condition = expression.NewLiteralBoolean(true)
	outer := p.NewNode(plan.FilterKind)
	outer.Condition = expression.NewLiteralBoolean(false)
	p.AddEdge(scan, inner)
	p.AddEdge(inner, outer)
	p.SetRoot(outer)

	require.NoError(OperatorFusion(p))

	var kinds []plan.Kind
	p.Walk(func(n *plan.Node) { kinds = append(kinds, n.Kind) })
	require.Equal([]plan.Kind{plan.ScanKind, plan.FilterKind}, kinds)
	require.Equal(expression.And, outer.Condition.NodeType)
}

func TestOptimizeRunsFullChainWithoutError(t *testing.T) {
	require := require.New(t)
	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	f := p.NewNode(plan.FilterKind)
	f.Condition = expression.NewAnd(expression.NewLiteralBoolean(true), expression.NewLiteralBoolean(true))
	p.AddEdge(scan, f)
	p.SetRoot(f)

	require.NoError(Optimize(p))
	require.Equal(scan, p.Root())
}
