// Package sql holds the core data model shared by the planner, binder,
// optimizer and executor: types, schemas, columns, morsels, the catalog
// contract and the per-query Context. Naming and the Context/session split
// follow dolthub/go-mysql-server's gopkg.in/src-d/go-mysql-server.v0/sql package
// (sql/session_test.go, sql/core_test.go), adapted from its row-oriented
// model to this package's columnar, morsel-streaming model.
package sql

// Type identifies the scalar type of a column or expression result.
type Type int

const (
	Unknown Type = iota
	Null
	Boolean
	Int64
	Float64
	Varchar
	Timestamp
	Struct
	List
)

// String renders a Type the way diagnostics and EXPLAIN output do.
func (t Type) String() string {
	switch t {
	case Null:
		return "NULL"
	case Boolean:
		return "BOOLEAN"
	case Int64:
		return "INTEGER"
	case Float64:
		return "DOUBLE"
	case Varchar:
		return "VARCHAR"
	case Timestamp:
		return "TIMESTAMP"
	case Struct:
		return "STRUCT"
	case List:
		return "LIST"
	default:
		return "UNKNOWN"
	}
}

// Disposition refines how a column of a physical type should be displayed
// or generated; FAKE() dataset maps NAME -> (Varchar, NAME)
// and AGE -> (Int64, AGE).
type Disposition int

const (
	NoDisposition Disposition = iota
	NameDisposition
	AgeDisposition
)

// PushableTypes is the set of column types a PredicatePushable connector
// may accept.
var PushableTypes = map[Type]bool{
	Boolean:   true,
	Float64:   true,
	Int64:     true,
	Varchar:   true,
}

// ComparisonOp enumerates the comparison operators; Pushable reports the
// subset a connector may accept (PUSHABLE_OPS).
type ComparisonOp int

const (
	Eq ComparisonOp = iota
	NotEq
	Gt
	GtEq
	Lt
	LtEq
	Like
	NotLike
	ILike
	NotILike
	In
	NotIn
	Contains
	NotContains
	Is
	IsNot
)

// Pushable reports whether op is one of the six comparisons a connector
// is allowed to push down ({=, ≠, <, ≤, >, ≥}).
func (op ComparisonOp) Pushable() bool {
	switch op {
	case Eq, NotEq, Gt, GtEq, Lt, LtEq:
		return true
	default:
		return false
	}
}

func (op ComparisonOp) String() string {
	switch op {
	case Eq:
		return "="
	case NotEq:
		return "<>"
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Like:
		return "LIKE"
	case NotLike:
		return "NOT LIKE"
	case ILike:
		return "ILIKE"
	case NotILike:
		return "NOT ILIKE"
	case In:
		return "IN"
	case NotIn:
		return "NOT IN"
	case Contains:
		return "CONTAINS"
	case NotContains:
		return "NOT CONTAINS"
	case Is:
		return "IS"
	case IsNot:
		return "IS NOT"
	default:
		return "?"
	}
}
