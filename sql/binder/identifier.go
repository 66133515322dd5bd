package binder

import (
	"github.com/vectorsql/engine/internal/similartext"
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sqlerr"
)

// locateIdentifier resolves an unbound `source.column` or bare `column`
// reference against the relations in scope, per // locate_identifier algorithm:
//  1. if source is given, look only in that relation's schema;
//  2. otherwise search every relation in scope, erroring if more than one
//     exposes a column with that name (AmbiguousIdentifier);
//  3. error with a fuzzy suggestion if nothing matches (ColumnNotFound).
func locateIdentifier(ctx *BindingContext, source, column string) (sql.Column, string, error) {
	if source != "" {
		schema, ok := ctx.Schema(source)
		if !ok {
			suggestion := similartext.Find(ctx.Relations(), source)
			return sql.Column{}, "", sqlerr.ErrDatasetNotFound.New(source, suggestion)
		}
		col, ok := schema.FindByName(column)
		if !ok {
			suggestion := similartext.Find(schema.Names(), column)
			return sql.Column{}, "", sqlerr.ErrColumnNotFound.New(source+"."+column, suggestion)
		}
		return col, source, nil
	}

	var found sql.Column
	var foundIn []string
	for _, rel := range ctx.Relations() {
		schema, _ := ctx.Schema(rel)
		if col, ok := schema.FindByName(column); ok {
			found = col
			foundIn = append(foundIn, rel)
		}
	}
	switch len(foundIn) {
	case 0:
		suggestion := similartext.Find(ctx.AllColumnNames(), column)
		return sql.Column{}, "", sqlerr.ErrColumnNotFound.New(column, suggestion)
	case 1:
		return found, foundIn[0], nil
	default:
		return sql.Column{}, "", sqlerr.ErrAmbiguousIdentifier.New(column, "")
	}
}

// locateRelation resolves a bare relation/alias name against scope,
// erroring with a fuzzy suggestion if it isn't present.
func locateRelation(ctx *BindingContext, name string) (*sql.RelationSchema, error) {
	schema, ok := ctx.Schema(name)
	if !ok {
		suggestion := similartext.Find(ctx.Relations(), name)
		return nil, sqlerr.ErrDatasetNotFound.New(name, suggestion)
	}
	return schema, nil
}
