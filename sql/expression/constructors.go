package expression

import "github.com/vectorsql/engine/sql"

// NewIdentifier builds an unbound IDENTIFIER expression. source may be ""
// for an unqualified reference.
func NewIdentifier(source, column string) *Node {
	return &Node{NodeType: Identifier, Source: source, SourceColumn: column}
}

// NewLiteralBoolean, NewLiteralNumber, NewLiteralString, NewLiteralNull and
// NewLiteralTimestamp build LITERAL* nodes carrying a raw value.
func NewLiteralBoolean(v bool) *Node       { return &Node{NodeType: LiteralBoolean, Value: v} }
func NewLiteralNumber(v float64) *Node     { return &Node{NodeType: LiteralNumber, Value: v} }
func NewLiteralString(v string) *Node      { return &Node{NodeType: LiteralString, Value: v} }
func NewLiteralNull() *Node                { return &Node{NodeType: LiteralNull, Value: nil} }
func NewLiteralTimestamp(v string) *Node   { return &Node{NodeType: LiteralTimestamp, Value: v} }
func NewLiteralList(items ...*Node) *Node  { return &Node{NodeType: LiteralList, Parameters: items} }

// NewBinary builds a BINARY_OPERATOR (arithmetic) node.
func NewBinary(op ArithOp, left, right *Node) *Node {
	return &Node{NodeType: BinaryOperator, ArithOp: op, Left: left, Right: right}
}

// NewComparison builds a COMPARISON_OPERATOR node.
func NewComparison(op sql.ComparisonOp, left, right *Node) *Node {
	return &Node{NodeType: ComparisonOperator, ComparisonOp: op, Left: left, Right: right}
}

// NewAnd, NewOr, NewXor build the boolean-connective nodes.
func NewAnd(left, right *Node) *Node { return &Node{NodeType: And, Left: left, Right: right} }
func NewOr(left, right *Node) *Node  { return &Node{NodeType: Or, Left: left, Right: right} }
func NewXor(left, right *Node) *Node { return &Node{NodeType: Xor, Left: left, Right: right} }

// NewNot builds a NOT node wrapping operand.
func NewNot(operand *Node) *Node { return &Node{NodeType: Not, Centre: operand} }

// NewUnary builds a UNARY_OPERATOR node (IsNull, IsTrue, Negate, ...).
func NewUnary(op UnaryOp, operand *Node) *Node {
	return &Node{NodeType: UnaryOperator, UnaryOp: op, Centre: operand}
}

// NewFunction builds a FUNCTION node.
func NewFunction(name string, args ...*Node) *Node {
	return &Node{NodeType: Function, FunctionName: name, Parameters: args}
}

// NewAggregator builds an AGGREGATOR node.
func NewAggregator(name string, args ...*Node) *Node {
	return &Node{NodeType: Aggregator, FunctionName: name, Parameters: args}
}

// NewNested wraps inner in a NESTED node (a parenthesized sub-expression
// that evaluates to its child unchanged).
func NewNested(inner *Node) *Node { return &Node{NodeType: Nested, Centre: inner} }

// NewWildcard builds a WILDCARD node; source is "" for a bare `*` or a
// relation/alias name for `R.*`.
func NewWildcard(source string) *Node { return &Node{NodeType: Wildcard, Source: source} }

// NewSubquery builds a SUBQUERY expression node. plan is the inner
// sql/plan.Node, carried opaquely to avoid an import cycle.
func NewSubquery(plan interface{}) *Node {
	return &Node{NodeType: Subquery, SubqueryPlan: plan}
}

// WithAlias returns n with Alias set, for chaining at construction sites
// (`SELECT a+1 AS total`).
func (n *Node) WithAlias(alias string) *Node {
	n.Alias = alias
	return n
}
