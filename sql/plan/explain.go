package plan

import "strings"

// Explain renders p as one indented line per node, root first, matching
// dolthub/go-mysql-server's EXPLAIN text format (sql/plan/node.go's Kind.String()
// names, indentation depth = tree depth) closely enough for EXPLAIN to be
// human-readable rather than a debugging dump of internal IDs.
func Explain(p *Plan) []string {
	root := p.Root()
	if root == nil {
		return nil
	}
	var lines []string
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		lines = append(lines, strings.Repeat("  ", depth)+describe(n))
		for _, c := range p.Children(n) {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return lines
}

func describe(n *Node) string {
	switch n.Kind {
	case ScanKind:
		return "Scan(" + n.Relation + ")"
	case FunctionDatasetKind:
		return "FunctionDataset(" + n.FunctionName + ")"
	case FilterKind:
		return "Filter"
	case JoinKind:
		return "Join"
	case AggregateKind:
		return "AggregateAndGroup"
	case DistinctKind:
		return "Distinct"
	case ProjectKind:
		return "Project"
	case OrderKind:
		return "Order"
	case OffsetKind:
		return "Offset"
	case LimitKind:
		return "Limit"
	case ExitKind:
		return "Exit"
	default:
		return n.Kind.String()
	}
}
