// Package sqle wires the pipeline end to end:
// parse -> LogicalPlan (sql/plan) -> bind (sql/binder) -> optimize
// (sql/optimizer) -> execute (sql/rowexec). Structure follows
// dolthub/go-mysql-server's own top-level Engine: a single struct holding
// the shared, read-only collaborators (catalog, function registry,
// configuration) plus small per-query Plan/Query/QueryAt entry points,
// adapted from its engine.go (New/NewDefault/Query/AnalyzeQuery) and its
// node/RowIter model to LogicalPlan/MorselIterator.
package sqle

import (
	"time"

	"github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/vectorsql/engine/config"
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/binder"
	"github.com/vectorsql/engine/sql/catalog"
	"github.com/vectorsql/engine/sql/connector/memtable"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sql/optimizer"
	"github.com/vectorsql/engine/sql/plan"
	"github.com/vectorsql/engine/sql/rowexec"
	"github.com/vectorsql/engine/sqlerr"
)

// Engine is the top-level SQL engine: a catalog of relations and
// functions, shared across every query run against it.
type Engine struct {
	Catalog   *catalog.Catalog
	Functions *functions.Registry
	Config    *config.Config
}

// New creates an Engine over cat and the given configuration. This engine
// holds no background goroutines or open file handles to close, unlike
// dolthub/go-mysql-server's (no LockSubsystem/ProcessList analog exists for an
// embeddable, single-process query engine).
func New(cat *catalog.Catalog, reg *functions.Registry, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		Catalog:   cat,
		Functions: reg,
		Config:    cfg,
	}
}

// NewDefault returns an Engine pre-populated with the two built-in sample
// datasets, $planets and $satellites.
func NewDefault() *Engine {
	reg := functions.NewRegistry()
	cat := catalog.New(reg)
	cat.Register("$planets", memtable.NewPlanets())
	cat.Register("$satellites", memtable.NewSatellites())
	return New(cat, reg, config.Default())
}

// Plan parses query, strips any temporal FOR clause, and lowers, binds and
// optimizes it into an executable LogicalPlan. now
// pins the clock FOR TODAY/FOR YESTERDAY resolve against.
func (e *Engine) Plan(query string, now time.Time) (*plan.Plan, error) {
	clean, temporal := plan.StripTemporalClause(query, now)

	stmt, err := sqlparser.Parse(clean)
	if err != nil {
		return nil, err
	}

	p, err := plan.BuildPlan(stmt, temporal)
	if err != nil {
		return nil, err
	}

	b := binder.New(e.Catalog)
	b.Functions = e.Functions
	if _, err := b.Bind(p); err != nil {
		return nil, err
	}

	switch p.Root().Kind {
	case plan.SetKind, plan.ShowColumnsKind, plan.ShowVariableKind:
		return p, nil
	case plan.ExplainKind:
		if err := optimizer.Optimize(p.Root().ExplainTarget); err != nil {
			return nil, err
		}
		return p, nil
	default:
		if err := optimizer.Optimize(p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Query runs query against the engine's catalog and returns the output
// schema plus a streaming iterator over the result Morsels.
func (e *Engine) Query(ctx *sql.Context, query string) (*sql.RelationSchema, sql.MorselIterator, error) {
	return e.QueryAt(ctx, query, time.Now())
}

// QueryAt is Query with an injected clock, for deterministic FOR
// TODAY/FOR YESTERDAY resolution in tests.
func (e *Engine) QueryAt(ctx *sql.Context, query string, now time.Time) (*sql.RelationSchema, sql.MorselIterator, error) {
	p, err := e.Plan(query, now)
	if err != nil {
		return nil, nil, err
	}

	switch p.Root().Kind {
	case plan.SetKind:
		return e.execSet(ctx, p.Root())
	case plan.ShowVariableKind:
		return e.execShowVariable(ctx)
	case plan.ShowColumnsKind:
		return e.execShowColumns(ctx, p.Root())
	case plan.ExplainKind:
		return e.execExplain(p.Root())
	default:
		ev := eval.New(e.Functions)
		it, err := rowexec.Build(ctx, p, ev, e.Config.PageSize)
		if err != nil {
			return nil, nil, err
		}
		return p.ExitSchema(), it, nil
	}
}

func (e *Engine) execSet(ctx *sql.Context, n *plan.Node) (*sql.RelationSchema, sql.MorselIterator, error) {
	ev := eval.New(e.Functions)
	oneRow := sql.NewMorsel(sql.NewRelationSchema(""), []sql.Vector{{Values: []interface{}{nil}}})
	v, err := ev.Eval(ctx, oneRow, n.SetValue)
	if err != nil {
		return nil, nil, err
	}
	var value interface{}
	if v.Len() > 0 {
		value = v.Values[0]
	}
	ctx.Session().SetUserVariable(n.SetName, v.Type, value)
	return nil, newStaticIterator(nil), nil
}

func (e *Engine) execShowVariable(ctx *sql.Context) (*sql.RelationSchema, sql.MorselIterator, error) {
	schema := sql.NewRelationSchema(sql.DerivedSchema).
		Append(sql.NewFlatColumn("Variable_name", sql.Varchar, sql.DerivedSchema).Column).
		Append(sql.NewFlatColumn("Value", sql.Varchar, sql.DerivedSchema).Column)
	names, values := ctx.Session().SessionVariableNames()
	return schema, newStaticIterator(schema, names, values), nil
}

func (e *Engine) execShowColumns(ctx *sql.Context, n *plan.Node) (*sql.RelationSchema, sql.MorselIterator, error) {
	conn, err := e.Catalog.Relation(n.ShowRelation)
	if err != nil {
		return nil, nil, err
	}
	relSchema, err := conn.GetDatasetSchema()
	if err != nil {
		return nil, nil, err
	}
	schema := sql.NewRelationSchema(sql.DerivedSchema).
		Append(sql.NewFlatColumn("Field", sql.Varchar, sql.DerivedSchema).Column).
		Append(sql.NewFlatColumn("Type", sql.Varchar, sql.DerivedSchema).Column)
	names := make([]string, len(relSchema.Columns))
	types := make([]string, len(relSchema.Columns))
	for i, c := range relSchema.Columns {
		names[i] = c.Name
		types[i] = c.Type.String()
	}
	return schema, newStaticIterator(schema, names, types), nil
}

func (e *Engine) execExplain(n *plan.Node) (*sql.RelationSchema, sql.MorselIterator, error) {
	if n.ExplainTarget == nil {
		return nil, nil, sqlerr.ErrInvalidInternalState.New("EXPLAIN without a target plan")
	}
	schema := sql.NewRelationSchema(sql.DerivedSchema).
		Append(sql.NewFlatColumn("plan", sql.Varchar, sql.DerivedSchema).Column)
	lines := plan.Explain(n.ExplainTarget)
	return schema, newStaticIterator(schema, lines), nil
}
