package sql

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var identityCounter int64

// NewColumnIdentity returns a process-unique, opaque column identity.
// Identity is assigned once at column creation and never rewritten.
func NewColumnIdentity() string {
	n := atomic.AddInt64(&identityCounter, 1)
	return fmt.Sprintf("c%d", n)
}

// NewSyntheticSchemaName returns a `$shared-<rand>` / `$values-<rand>`
// style synthetic relation name, using google/uuid for the random suffix.
func NewSyntheticSchemaName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// Well-known synthetic schema name prefixes.
const (
	DerivedSchema    = "$derived"
	ProjectSchema    = "$project"
	CalculatedSchema = "$calculated"
	SharedSchemaTag  = "$shared-"
	ValuesSchemaTag  = "$values-"
)

// Column is a single column of a RelationSchema. Identity is the sole
// means of referring to a column once bound;
// Name is the display name; Origin lists the relation name(s) the column
// is visible under (more than one after a USING/NATURAL join merge).
type Column struct {
	Identity    string
	Name        string
	Type        Type
	Disposition Disposition
	Origin      []string
	Aliases     []string
}

// WithOrigin returns a shallow copy of c re-homed under origin, used when a
// subquery or join promotion changes which relation(s) a column is visible
// under without changing its identity.
func (c Column) WithOrigin(origin ...string) Column {
	c.Origin = origin
	return c
}

// ConstantColumn is a Column produced by a literal expression.
type ConstantColumn struct {
	Column
	Value interface{}
}

// FlatColumn is a Column produced by a non-literal expression (a function
// call, arithmetic, or an aggregate) or a physical relation's field.
type FlatColumn struct {
	Column
}

// NewFlatColumn creates a FlatColumn with a fresh identity.
func NewFlatColumn(name string, typ Type, origin ...string) FlatColumn {
	return FlatColumn{Column{Identity: NewColumnIdentity(), Name: name, Type: typ, Origin: origin}}
}

// NewConstantColumn creates a ConstantColumn with a fresh identity.
func NewConstantColumn(name string, typ Type, value interface{}) ConstantColumn {
	return ConstantColumn{Column{Identity: NewColumnIdentity(), Name: name, Type: typ}, value}
}

// RelationSchema is a relation visible in the current binding scope
//: a physical table under its alias, a derived scope such as
// `$derived`, or a synthetic `$shared-<rand>` scope created by a
// USING/NATURAL join.
type RelationSchema struct {
	Name    string
	Columns []Column
	Aliases []string
}

// NewRelationSchema returns an empty schema named name.
func NewRelationSchema(name string) *RelationSchema {
	return &RelationSchema{Name: name}
}

// Clone returns a deep-enough copy of the schema: a new Columns slice, so
// appends on the clone do not alias the original.
func (r *RelationSchema) Clone() *RelationSchema {
	cols := make([]Column, len(r.Columns))
	copy(cols, r.Columns)
	aliases := make([]string, len(r.Aliases))
	copy(aliases, r.Aliases)
	return &RelationSchema{Name: r.Name, Columns: cols, Aliases: aliases}
}

// FindByName returns the column named name (case-insensitive) and whether
// it was found.
func (r *RelationSchema) FindByName(name string) (Column, bool) {
	for _, c := range r.Columns {
		if equalFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// FindByIdentity returns the column with the given identity.
func (r *RelationSchema) FindByIdentity(identity string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Identity == identity {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the display names of every column, used to build fuzzy
// "did you mean" suggestions.
func (r *RelationSchema) Names() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Name
	}
	return out
}

// Append adds a column to the schema, returning the schema for chaining.
func (r *RelationSchema) Append(c Column) *RelationSchema {
	r.Columns = append(r.Columns, c)
	return r
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
