// Package functions is the static function registry: a name ->
// (arity, vectorized kernel) map populated at startup, immutable
// thereafter, with alias names collapsing to a single kernel (AVG, MEAN,
// AVERAGE -> one mean kernel).
package functions

import (
	"strings"

	"github.com/vectorsql/engine/sql"
)

// Registry is an immutable-after-init map of scalar and aggregate function
// signatures, looked up case-insensitively.
type Registry struct {
	scalars    map[string]sql.FunctionSignature
	aggregates map[string]sql.FunctionSignature
}

// NewRegistry returns a Registry pre-populated with the built-in scalar and
// aggregate functions (the UNARY_OPERATOR kernels live in sql/eval instead,
// since they are not name-addressed functions).
func NewRegistry() *Registry {
	r := &Registry{
		scalars:    make(map[string]sql.FunctionSignature),
		aggregates: make(map[string]sql.FunctionSignature),
	}
	registerScalars(r)
	registerAggregates(r)
	return r
}

func key(name string) string { return strings.ToUpper(name) }

// RegisterScalar adds or replaces a scalar signature, including under any
// aliases.
func (r *Registry) RegisterScalar(sig sql.FunctionSignature, aliases ...string) {
	r.scalars[key(sig.Name)] = sig
	for _, a := range aliases {
		aliased := sig
		aliased.Name = a
		r.scalars[key(a)] = aliased
	}
}

// RegisterAggregate adds or replaces an aggregate signature, including
// under any aliases.
func (r *Registry) RegisterAggregate(sig sql.FunctionSignature, aliases ...string) {
	r.aggregates[key(sig.Name)] = sig
	for _, a := range aliases {
		aliased := sig
		aliased.Name = a
		r.aggregates[key(a)] = aliased
	}
}

// Scalar looks up a scalar function by name (case-insensitive).
func (r *Registry) Scalar(name string) (sql.FunctionSignature, bool) {
	s, ok := r.scalars[key(name)]
	return s, ok
}

// Aggregate looks up an aggregate function by name (case-insensitive).
func (r *Registry) Aggregate(name string) (sql.FunctionSignature, bool) {
	s, ok := r.aggregates[key(name)]
	return s, ok
}

// Lookup searches the unified map of scalar and aggregate functions, per
// function resolution (aggregates first, so an AGGREGATOR
// node always prefers the aggregate signature when a name is registered as
// both).
func (r *Registry) Lookup(name string) (sql.FunctionSignature, bool, bool) {
	if s, ok := r.Aggregate(name); ok {
		return s, true, true
	}
	if s, ok := r.Scalar(name); ok {
		return s, false, true
	}
	return sql.FunctionSignature{}, false, false
}

// Names lists every registered scalar and aggregate name (duplicates
// removed), for fuzzy "did you mean" suggestions.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range []map[string]sql.FunctionSignature{r.scalars, r.aggregates} {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
