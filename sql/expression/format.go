package expression

import (
	"fmt"
	"strings"
)

// Format renders a deterministic, canonical textual form of an expression
// tree — format_expression, used to name the FlatColumn or
// ConstantColumn a non-identifier expression binds to. The same tree
// always produces the same name.
func Format(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.NodeType {
	case Identifier:
		if n.Source != "" {
			return n.Source + "." + n.SourceColumn
		}
		return n.SourceColumn
	case LiteralBoolean:
		return fmt.Sprintf("%v", n.Value)
	case LiteralNumber:
		return trimFloat(n.Value)
	case LiteralString:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", n.Value), "'", "''") + "'"
	case LiteralNull:
		return "NULL"
	case LiteralTimestamp:
		return "'" + fmt.Sprintf("%v", n.Value) + "'"
	case LiteralList:
		parts := make([]string, len(n.Parameters))
		for i, p := range n.Parameters {
			parts[i] = Format(p)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Function:
		return formatCall(n.FunctionName, n.Parameters)
	case Aggregator:
		return formatCall(n.FunctionName, n.Parameters)
	case ComparisonOperator:
		return Format(n.Left) + " " + n.ComparisonOp.String() + " " + Format(n.Right)
	case BinaryOperator:
		return Format(n.Left) + " " + n.ArithOp.String() + " " + Format(n.Right)
	case And:
		return Format(n.Left) + " AND " + Format(n.Right)
	case Or:
		return Format(n.Left) + " OR " + Format(n.Right)
	case Xor:
		return Format(n.Left) + " XOR " + Format(n.Right)
	case Not:
		return "NOT " + Format(n.Centre)
	case UnaryOperator:
		if n.UnaryOp == Negate {
			return "-" + Format(n.Centre)
		}
		return Format(n.Centre) + " " + n.UnaryOp.String()
	case Nested:
		return "(" + Format(n.Centre) + ")"
	case Wildcard:
		if n.Source != "" {
			return n.Source + ".*"
		}
		return "*"
	case Subquery:
		return "(SUBQUERY)"
	default:
		return "?"
	}
}

func formatCall(name string, args []*Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Format(a)
	}
	return strings.ToUpper(name) + "(" + strings.Join(parts, ", ") + ")"
}

func trimFloat(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// DisplayName is the display name the binder assigns a newly-derived
// column: the formatted expression, or its alias when one is given.
func DisplayName(n *Node) string {
	if n.Alias != "" {
		return n.Alias
	}
	return Format(n)
}
