package binder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sql/plan"
)

// fakeConnector serves a fixed schema with no rows, enough to exercise
// binding without needing the memtable connector.
type fakeConnector struct{ schema *sql.RelationSchema }

func (f *fakeConnector) GetDatasetSchema() (*sql.RelationSchema, error) { return f.schema, nil }
func (f *fakeConnector) ReadDataset(ctx *sql.Context, opts sql.ReadOptions) (sql.MorselIterator, error) {
	return nil, nil
}

type fakeCatalog struct {
	relations map[string]*fakeConnector
	functions *functions.Registry
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{relations: map[string]*fakeConnector{}, functions: functions.NewRegistry()}
}

func (c *fakeCatalog) addRelation(name string, schema *sql.RelationSchema) {
	c.relations[name] = &fakeConnector{schema: schema}
}

func (c *fakeCatalog) Relation(name string) (sql.Connector, error) {
	if r, ok := c.relations[name]; ok {
		return r, nil
	}
	return nil, errors.New("not found")
}
func (c *fakeCatalog) HasRelation(name string) bool { _, ok := c.relations[name]; return ok }
func (c *fakeCatalog) ScalarFunction(name string) (sql.FunctionSignature, bool) {
	return c.functions.Scalar(name)
}
func (c *fakeCatalog) AggregateFunction(name string) (sql.FunctionSignature, bool) {
	return c.functions.Aggregate(name)
}
func (c *fakeCatalog) FunctionNames() []string { return c.functions.Names() }
func (c *fakeCatalog) RelationNames() []string {
	var out []string
	for k := range c.relations {
		out = append(out, k)
	}
	return out
}

func planetsSchema() *sql.RelationSchema {
	schema := sql.NewRelationSchema("planets")
	schema.Append(sql.NewFlatColumn("id", sql.Int64, "planets").Column)
	schema.Append(sql.NewFlatColumn("name", sql.Varchar, "planets").Column)
	return schema
}

func TestBindSimpleScanProject(t *testing.T) {
	require := require.New(t)
	cat := newFakeCatalog()
	cat.addRelation("planets", planetsSchema())

	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	scan.Relation = "planets"
	proj := p.NewNode(plan.ProjectKind)
	proj.ProjectColumns = []*expression.Node{expression.NewIdentifier("", "name")}
	p.AddEdge(scan, proj)
	exit := p.NewNode(plan.ExitKind)
	exit.ExitColumns = proj.ProjectColumns
	p.AddEdge(proj, exit)
	p.SetRoot(exit)

	b := New(cat)
	schema, err := b.Bind(p)
	require.NoError(err)
	require.Len(schema.Columns, 1)
	require.Equal("name", schema.Columns[0].Name)
}

func TestBindColumnNotFoundSuggestsClosest(t *testing.T) {
	require := require.New(t)
	cat := newFakeCatalog()
	cat.addRelation("planets", planetsSchema())

	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	scan.Relation = "planets"
	proj := p.NewNode(plan.ProjectKind)
	proj.ProjectColumns = []*expression.Node{expression.NewIdentifier("", "nam")}
	p.AddEdge(scan, proj)
	exit := p.NewNode(plan.ExitKind)
	exit.ExitColumns = proj.ProjectColumns
	p.AddEdge(proj, exit)
	p.SetRoot(exit)

	_, err := New(cat).Bind(p)
	require.Error(err)
	require.Contains(err.Error(), "name")
}

func TestBindWildcardExpansion(t *testing.T) {
	require := require.New(t)
	cat := newFakeCatalog()
	cat.addRelation("planets", planetsSchema())

	p := plan.NewPlan()
	scan := p.NewNode(plan.ScanKind)
	scan.Relation = "planets"
	proj := p.NewNode(plan.ProjectKind)
	proj.ProjectColumns = []*expression.Node{expression.NewWildcard("")}
	p.AddEdge(scan, proj)
	exit := p.NewNode(plan.ExitKind)
	p.AddEdge(proj, exit)
	p.SetRoot(exit)

	b := New(cat)
	_, err := b.Bind(p)
	require.NoError(err)
	require.Len(proj.ProjectColumns, 2)
}

func TestBindAmbiguousIdentifierAcrossJoinSides(t *testing.T) {
	require := require.New(t)
	cat := newFakeCatalog()
	cat.addRelation("planets", planetsSchema())
	cat.addRelation("satellites", planetsSchema())

	p := plan.NewPlan()
	left := p.NewNode(plan.ScanKind)
	left.Relation = "planets"
	right := p.NewNode(plan.ScanKind)
	right.Relation = "satellites"
	join := p.NewNode(plan.JoinKind)
	join.JoinType = plan.InnerJoin
	p.AddEdge(left, join)
	p.AddEdge(right, join)

	filter := p.NewNode(plan.FilterKind)
	filter.Condition = expression.NewComparison(sql.Gt, expression.NewIdentifier("", "id"), expression.NewLiteralNumber(1))
	p.AddEdge(join, filter)
	exit := p.NewNode(plan.ExitKind)
	p.AddEdge(filter, exit)
	p.SetRoot(exit)

	_, err := New(cat).Bind(p)
	require.Error(err)
}

func TestBindUsingJoinMergesColumns(t *testing.T) {
	require := require.New(t)
	cat := newFakeCatalog()
	cat.addRelation("planets", planetsSchema())
	cat.addRelation("satellites", planetsSchema())

	p := plan.NewPlan()
	left := p.NewNode(plan.ScanKind)
	left.Relation = "planets"
	right := p.NewNode(plan.ScanKind)
	right.Relation = "satellites"
	join := p.NewNode(plan.JoinKind)
	join.JoinType = plan.InnerJoin
	join.Using = []string{"id"}
	p.AddEdge(left, join)
	p.AddEdge(right, join)
	exit := p.NewNode(plan.ExitKind)
	p.AddEdge(join, exit)
	p.SetRoot(exit)

	_, err := New(cat).Bind(p)
	require.NoError(err)
}
