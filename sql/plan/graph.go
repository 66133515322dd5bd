package plan

import "github.com/vectorsql/engine/sql"

// Plan is the LogicalPlan DAG: nodes addressed by an opaque
// id, edges recorded child->parent. For everything BuildPlan currently
// produces (SELECT lowering) the graph is a tree with exactly one Exit
// root, but the container stays general enough for a node to have more
// than one parent once correlated subqueries are fused in place by the
// optimizer.
type Plan struct {
	Nodes    map[string]*Node
	children map[string][]string
	parents  map[string][]string
	root     string
	next     int
}

// NewPlan returns an empty Plan.
func NewPlan() *Plan {
	return &Plan{
		Nodes:    make(map[string]*Node),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
}

// NewNode allocates and registers a Node of the given Kind, returning it
// for the caller to fill in kind-specific fields.
func (p *Plan) NewNode(kind Kind) *Node {
	p.next++
	n := &Node{ID: idOf(p.next), Kind: kind}
	p.Nodes[n.ID] = n
	return n
}

func idOf(i int) string {
	const letters = "n"
	// n1, n2, ... keeps ids short and stable for snapshot tests.
	return letters + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// AddEdge records that child feeds parent (parent consumes child's output
// morsels), per leaves-up construction order.
func (p *Plan) AddEdge(child, parent *Node) {
	p.children[parent.ID] = append(p.children[parent.ID], child.ID)
	p.parents[child.ID] = append(p.parents[child.ID], parent.ID)
}

// Children returns n's child nodes, in the order they were added.
func (p *Plan) Children(n *Node) []*Node {
	ids := p.children[n.ID]
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = p.Nodes[id]
	}
	return out
}

// Parents returns n's parent nodes.
func (p *Plan) Parents(n *Node) []*Node {
	ids := p.parents[n.ID]
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = p.Nodes[id]
	}
	return out
}

// RemoveEdge deletes a previously-added child->parent edge.
func (p *Plan) RemoveEdge(child, parent *Node) {
	p.children[parent.ID] = removeID(p.children[parent.ID], child.ID)
	p.parents[child.ID] = removeID(p.parents[child.ID], parent.ID)
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// ReplaceChild rewires parent to consume replacement in place of old,
// preserving old's position among parent's other children. Used by the
// optimizer to splice nodes out of (or into) the tree in place.
func (p *Plan) ReplaceChild(parent, old, replacement *Node) {
	ids := p.children[parent.ID]
	for i, id := range ids {
		if id == old.ID {
			ids[i] = replacement.ID
		}
	}
	p.parents[replacement.ID] = append(p.parents[replacement.ID], parent.ID)
	p.parents[old.ID] = removeID(p.parents[old.ID], parent.ID)
}

// RemoveNode drops n from the graph's bookkeeping entirely. Callers must
// have already rewired every edge that referenced n.
func (p *Plan) RemoveNode(n *Node) {
	delete(p.Nodes, n.ID)
	delete(p.children, n.ID)
	delete(p.parents, n.ID)
}

// SetRoot designates the plan's single Exit node.
func (p *Plan) SetRoot(n *Node) { p.root = n.ID }

// Root returns the plan's Exit node, or nil if unset.
func (p *Plan) Root() *Node {
	if p.root == "" {
		return nil
	}
	return p.Nodes[p.root]
}

// Walk visits every node reachable from Root in post-order (children
// before parents), matching the binder's traversal order.
func (p *Plan) Walk(visit func(*Node)) {
	seen := make(map[string]bool)
	var rec func(id string)
	rec = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		for _, c := range p.children[id] {
			rec(c)
		}
		visit(p.Nodes[id])
	}
	if p.root != "" {
		rec(p.root)
	}
}

// ExitSchema returns the relation schema exposed by the plan's Exit node,
// valid only after binding.
func (p *Plan) ExitSchema() *sql.RelationSchema {
	root := p.Root()
	if root == nil || root.Kind != ExitKind {
		return nil
	}
	schema := sql.NewRelationSchema(sql.ProjectSchema)
	for _, e := range root.ExitColumns {
		if e.SchemaColumn != nil {
			schema.Append(*e.SchemaColumn)
		}
	}
	return schema
}
