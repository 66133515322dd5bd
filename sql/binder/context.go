// Package binder implements : a post-order walk over a
// LogicalPlan that resolves every identifier and function call to a
// stable column identity, attaches a RelationSchema to every node, and
// rejects anything the planner left ambiguous or unresolved. Structure and
// naming follow dolthub/go-mysql-server's reconstructed sql/planbuilder contract
// (BuildOnly/ParseOne lowering to a bound tree, sql/planbuilder/parse_test.go)
// adapted from its row-oriented scope resolution to column identities.
package binder

import (
	"github.com/vectorsql/engine/sql"
)

// BindingContext is the per-visit scope described in : the
// relation schemas visible at this point in the tree. Each child is bound
// into its own context and the parent starts from a fresh context that
// merges its children's, so sibling subtrees (e.g. the two sides of a
// join) never see each other's bindings mid-visit.
type BindingContext struct {
	schemas   map[string]*sql.RelationSchema
	relations []string
}

// NewBindingContext returns an empty scope.
func NewBindingContext() *BindingContext {
	return &BindingContext{schemas: make(map[string]*sql.RelationSchema)}
}

// Clone returns an independent copy: a new map and a new relations slice,
// so mutations inside a child visit cannot leak back without going
// through Merge.
func (b *BindingContext) Clone() *BindingContext {
	out := NewBindingContext()
	for k, v := range b.schemas {
		out.schemas[k] = v
	}
	out.relations = append(out.relations, b.relations...)
	return out
}

// Merge folds other's schemas into b, used at a parent node to fold in
// each child's context.
func (b *BindingContext) Merge(other *BindingContext) {
	for k, v := range other.schemas {
		b.schemas[k] = v
	}
	for _, r := range other.relations {
		if !b.hasRelation(r) {
			b.relations = append(b.relations, r)
		}
	}
}

func (b *BindingContext) hasRelation(name string) bool {
	for _, r := range b.relations {
		if r == name {
			return true
		}
	}
	return false
}

// AddSchema registers a relation's schema under name, e.g. an alias or a
// synthetic `$derived`/`$shared-<rand>` name.
func (b *BindingContext) AddSchema(name string, schema *sql.RelationSchema) {
	b.schemas[name] = schema
	if !b.hasRelation(name) {
		b.relations = append(b.relations, name)
	}
}

// Schema returns the schema registered under name.
func (b *BindingContext) Schema(name string) (*sql.RelationSchema, bool) {
	s, ok := b.schemas[name]
	return s, ok
}

// Relations lists every relation name currently in scope, in the order
// they were added (used to build AmbiguousDataset/AmbiguousIdentifier
// error messages deterministically).
func (b *BindingContext) Relations() []string {
	return append([]string(nil), b.relations...)
}

// AllSchemas returns every schema currently in scope.
func (b *BindingContext) AllSchemas() map[string]*sql.RelationSchema {
	return b.schemas
}

// AllColumnNames collects every column name visible in scope, used for
// fuzzy "did you mean" suggestions on ColumnNotFound.
func (b *BindingContext) AllColumnNames() []string {
	var out []string
	for _, schema := range b.schemas {
		out = append(out, schema.Names()...)
	}
	return out
}
