// Package expression is the bound/unbound expression tree:
// every node carries a NodeType, optional Left/Right/Centre/Parameters,
// a raw Value, an optional source qualifier, and — once the binder has
// run — a SchemaColumn giving it a stable column identity. Node layout
// follows a single tagged struct rather than an interface hierarchy per
// node kind, matching dolthub/go-mysql-server's dispatch-on-tag style seen in its planbuilder tests
// (gopkg.in/src-d/go-mysql-server.v0/sql/expression, reconstructed from
// github.com/dolthub/go-mysql-server/sql/planbuilder usage in
// sql/planbuilder/parse_test.go).
package expression

import "github.com/vectorsql/engine/sql"

// NodeType discriminates the kinds of expression node names.
type NodeType int

const (
	Identifier NodeType = iota
	LiteralBoolean
	LiteralNumber
	LiteralString
	LiteralNull
	LiteralTimestamp
	LiteralList
	Function
	Aggregator
	ComparisonOperator
	BinaryOperator
	And
	Or
	Xor
	Not
	Nested
	Wildcard
	Subquery
	UnaryOperator
)

func (t NodeType) IsLiteral() bool {
	switch t {
	case LiteralBoolean, LiteralNumber, LiteralString, LiteralNull, LiteralTimestamp, LiteralList:
		return true
	default:
		return false
	}
}

// UnaryOp enumerates the six UNARY_OPERATOR kernels.
type UnaryOp int

const (
	IsNull UnaryOp = iota
	IsNotNull
	IsTrue
	IsFalse
	IsNotTrue
	IsNotFalse
	Negate // unary minus, "negative-numeric"
)

func (op UnaryOp) String() string {
	switch op {
	case IsNull:
		return "IS NULL"
	case IsNotNull:
		return "IS NOT NULL"
	case IsTrue:
		return "IS TRUE"
	case IsFalse:
		return "IS FALSE"
	case IsNotTrue:
		return "IS NOT TRUE"
	case IsNotFalse:
		return "IS NOT FALSE"
	case Negate:
		return "-"
	default:
		return "?"
	}
}

// ArithOp enumerates the BINARY_OPERATOR arithmetic kernels.
type ArithOp int

const (
	Add ArithOp = iota
	Subtract
	Multiply
	Divide
	Modulo
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	default:
		return "?"
	}
}

// Node is a single expression tree node. The zero value is
// not meaningful; use the New* constructors below.
type Node struct {
	NodeType NodeType

	Left       *Node
	Right      *Node
	Centre     *Node
	Parameters []*Node

	Value interface{}

	// Source/SourceColumn identify an unbound IDENTIFIER as `source.column`
	// or a bare `column`.
	Source       string
	SourceColumn string
	Alias        string

	// FunctionName names a Function/Aggregator node.
	FunctionName string

	ComparisonOp sql.ComparisonOp
	ArithOp      ArithOp
	UnaryOp      UnaryOp

	// SubqueryPlan is opaque at this layer (a *plan.Plan) to avoid an
	// import cycle; sql/plan sets it through NewSubquery.
	SubqueryPlan interface{}

	// SchemaColumn is set by the binder: the stable column identity this
	// expression resolves to.
	SchemaColumn *sql.Column
	// QueryColumn is the display name chosen by the binder (may differ
	// from SchemaColumn.Name after an alias).
	QueryColumn string
}

// Bound reports whether the binder has attached a SchemaColumn.
func (n *Node) Bound() bool { return n != nil && n.SchemaColumn != nil }

// Type returns the expression's bound type, or sql.Unknown if unbound.
func (n *Node) Type() sql.Type {
	if n.SchemaColumn != nil {
		return n.SchemaColumn.Type
	}
	return sql.Unknown
}

// Identity returns the bound column identity, or "" if unbound.
func (n *Node) Identity() string {
	if n.SchemaColumn != nil {
		return n.SchemaColumn.Identity
	}
	return ""
}

// Walk visits n and every descendant in a fixed order
// (Left, Right, Centre, Parameters...), calling visit on each. Walk stops
// early if visit returns false.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	Walk(n.Left, visit)
	Walk(n.Right, visit)
	Walk(n.Centre, visit)
	for _, p := range n.Parameters {
		Walk(p, visit)
	}
}

// Clone returns a deep copy of n (used by strategies that rewrite a shared
// subtree without mutating the original, e.g. BooleanSimplification).
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Left = Clone(n.Left)
	c.Right = Clone(n.Right)
	c.Centre = Clone(n.Centre)
	if n.Parameters != nil {
		c.Parameters = make([]*Node, len(n.Parameters))
		for i, p := range n.Parameters {
			c.Parameters[i] = Clone(p)
		}
	}
	return &c
}
