// Package catalog is the concrete sql.Catalog: a static
// name -> Connector map plus the shared function registry, handed to the
// binder and to Scan at plan-build time. Structure mirrors dolthub/go-mysql-server's
// memory.Database (one name-keyed table map, looked up case-sensitively
// by relation name) generalized from "tables in a database" to
// "relations backed by arbitrary connectors".
package catalog

import (
	"sort"

	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/functions"
	"github.com/vectorsql/engine/sqlerr"
)

// Catalog implements sql.Catalog over an in-memory relation map.
type Catalog struct {
	relations map[string]sql.Connector
	functions *functions.Registry
}

// New returns an empty Catalog using reg for function resolution. Pass
// functions.NewRegistry() for the built-in set.
func New(reg *functions.Registry) *Catalog {
	return &Catalog{relations: make(map[string]sql.Connector), functions: reg}
}

// Register makes conn available under name.
func (c *Catalog) Register(name string, conn sql.Connector) {
	c.relations[name] = conn
}

func (c *Catalog) Relation(name string) (sql.Connector, error) {
	conn, ok := c.relations[name]
	if !ok {
		return nil, sqlerr.ErrDatasetNotFound.New(name, "")
	}
	return conn, nil
}

func (c *Catalog) HasRelation(name string) bool {
	_, ok := c.relations[name]
	return ok
}

func (c *Catalog) ScalarFunction(name string) (sql.FunctionSignature, bool) {
	return c.functions.Scalar(name)
}

func (c *Catalog) AggregateFunction(name string) (sql.FunctionSignature, bool) {
	return c.functions.Aggregate(name)
}

func (c *Catalog) FunctionNames() []string {
	names := c.functions.Names()
	sort.Strings(names)
	return names
}

func (c *Catalog) RelationNames() []string {
	names := make([]string, 0, len(c.relations))
	for name := range c.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
