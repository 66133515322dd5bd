// Package plan is the LogicalPlan graph: a directed
// acyclic graph of opaque-id nodes, leaves-up, built from a parsed SQL AST
// by BuildPlan and later decorated in place by the binder
// (github.com/vectorsql/engine/sql/binder) and rewritten by the heuristic
// optimizer (github.com/vectorsql/engine/sql/optimizer). Node layout
// mirrors sql/expression's single tagged struct, matching dolthub/go-mysql-server's
// dispatch-on-tag style seen in sql/plan/*_test.go
// (NewInnerJoin, NewProject, NewFilter, ... one constructor per step kind,
// one concrete type per kind there; collapsed here into fields
// on one struct per kind instead).
package plan

import (
	"time"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/expression"
)

// Kind discriminates the step kinds of LogicalNode.
type Kind int

const (
	ScanKind Kind = iota
	FunctionDatasetKind
	SubqueryKind
	FilterKind
	JoinKind
	AggregateKind
	DistinctKind
	ProjectKind
	OrderKind
	OffsetKind
	LimitKind
	ExitKind
	SetKind
	ShowColumnsKind
	ShowVariableKind
	ExplainKind
)

func (k Kind) String() string {
	names := [...]string{
		"Scan", "FunctionDataset", "Subquery", "Filter", "Join", "AggregateAndGroup",
		"Distinct", "Project", "Order", "Offset", "Limit", "Exit", "Set",
		"ShowColumns", "ShowVariable", "Explain",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// JoinType enumerates Join.type values.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	NaturalJoin
	LeftSemiJoin
	RightSemiJoin
	LeftAntiJoin
	RightAntiJoin
	CrossJoinUnnest
)

// Table-valued function names a FunctionDatasetKind node may carry.
const (
	ValuesFunction         = "VALUES"
	UnnestFunction         = "UNNEST"
	GenerateSeriesFunction = "GENERATE_SERIES"
	FakeFunction           = "FAKE"
)

// OrderKey is one `(expr, asc|desc)` entry of an Order node.
type OrderKey struct {
	Expr       *expression.Node
	Descending bool
}

// Node is one step of the LogicalPlan. Only the fields relevant to Kind
// are meaningful; this mirrors field-bearing variants as one
// struct rather than an interface hierarchy, so the binder and optimizer
// can dispatch with a single switch on Kind.
type Node struct {
	ID   string
	Kind Kind

	// Populated by the binder: the relation schemas visible immediately
	// above this node, keyed by relation/schema name.
	OutputSchemas map[string]*sql.RelationSchema

	// Scan
	Relation    string
	Alias       string
	Hints       []string
	StartDate   *time.Time
	EndDate     *time.Time
	Connector   sql.Connector
	ScanSchema  *sql.RelationSchema
	ScanColumns []string
	// Predicates is filled in by the optimizer's PredicatePushdown
	// strategy: conditions proven safe to hand to Connector.ReadDataset
	// directly, so the Filter operator above never sees those rows.
	Predicates []sql.Predicate

	// FunctionDataset
	FunctionName string
	FunctionArgs []*expression.Node

	// Filter
	Condition *expression.Node
	Simple    *bool
	Relations []string

	// Join
	JoinType           JoinType
	On                 *expression.Node
	Using              []string
	UnnestColumn       *expression.Node
	UnnestAlias        string
	LeftRelationNames  []string
	RightRelationNames []string
	LeftColumns        []string
	RightColumns       []string

	// AggregateAndGroup
	Groups         []*expression.Node
	Aggregates     []*expression.Node
	AllIdentifiers []*expression.Node

	// Distinct
	DistinctOn []*expression.Node

	// Project
	ProjectColumns []*expression.Node
	OrderByColumns []*expression.Node

	// Order
	OrderBy []OrderKey

	// Offset / Limit
	N int64

	// Exit
	ExitColumns []*expression.Node

	// Set
	SetName  string
	SetValue *expression.Node

	// ShowColumns / ShowVariable
	ShowRelation string
	ShowName     string

	// Explain wraps another plan.
	ExplainTarget *Plan
}
